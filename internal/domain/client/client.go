package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// NewClient é o cadastro de um cliente com suas rotas fixas.
type NewClient struct {
	Name           string      `json:"name" validate:"required,max=150"`
	Address        string      `json:"address" validate:"required,max=255"`
	Phone          string      `json:"phone" validate:"max=30"`
	Lat            *float64    `json:"lat" validate:"omitempty,latitude"`
	Lng            *float64    `json:"lng" validate:"omitempty,longitude"`
	HasFridge      bool        `json:"has_fridge"`
	FridgeCapacity string      `json:"fridge_capacity" validate:"max=50"`
	Routes         []RouteDays `json:"routes" validate:"required,min=1,dive"`
}

type RouteDays struct {
	RouteID string        `json:"route_id" validate:"required,route_id"`
	Days    schedule.Days `json:"days"`
}

// NewID gera ids no formato c_<unix>_<aleatório>.
func NewID(now time.Time) string {
	return fmt.Sprintf("c_%d_%s", now.Unix(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
}

func ExtraID(routeID string) string {
	return "extra_" + strings.ToLower(routeID)
}

func ExtraName(routeID string) string {
	return "Extra " + routeID
}

// Build monta o modelo com as agendas; rotas repetidas são unidas.
func Build(id string, in NewClient) *models.Client {
	c := &models.Client{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		Lat:            in.Lat,
		Lng:            in.Lng,
		Active:         true,
		HasFridge:      in.HasFridge,
		FridgeCapacity: in.FridgeCapacity,
	}

	byRoute := map[string]int{}
	for _, r := range in.Routes {
		if i, ok := byRoute[r.RouteID]; ok {
			s := &c.Schedules[i]
			s.Monday = s.Monday || r.Days.Monday
			s.Tuesday = s.Tuesday || r.Days.Tuesday
			s.Wednesday = s.Wednesday || r.Days.Wednesday
			s.Thursday = s.Thursday || r.Days.Thursday
			s.Friday = s.Friday || r.Days.Friday
			s.Saturday = s.Saturday || r.Days.Saturday
			s.Sunday = s.Sunday || r.Days.Sunday
			continue
		}
		byRoute[r.RouteID] = len(c.Schedules)
		c.Schedules = append(c.Schedules, ScheduleFor(id, r.RouteID, r.Days))
	}

	return c
}

func ScheduleFor(clientID, routeID string, d schedule.Days) models.ClientRouteSchedule {
	return models.ClientRouteSchedule{
		ClientID:  clientID,
		RouteID:   routeID,
		Monday:    d.Monday,
		Tuesday:   d.Tuesday,
		Wednesday: d.Wednesday,
		Thursday:  d.Thursday,
		Friday:    d.Friday,
		Saturday:  d.Saturday,
		Sunday:    d.Sunday,
	}
}

// Extra monta o cliente sintético de reserva da rota, atendido todos os dias.
func Extra(routeID string) *models.Client {
	id := ExtraID(routeID)
	return &models.Client{
		ID:        id,
		Name:      ExtraName(routeID),
		Address:   "Cliente extra de la ruta " + routeID,
		IsExtra:   true,
		Active:    true,
		Schedules: []models.ClientRouteSchedule{ScheduleFor(id, routeID, schedule.AllDays())},
	}
}
