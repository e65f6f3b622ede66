package schedule

import (
	"cmp"
	"regexp"
	"slices"
)

// DueClient é um cliente com entrega devida numa rota num dia.
type DueClient struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Phone            string   `json:"phone"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	IsExtra          bool     `json:"is_extra"`
	IsExtemporaneous bool     `json:"is_extemporaneous"`
	HasFridge        bool     `json:"has_fridge"`
	FridgeCapacity   string   `json:"fridge_capacity"`
}

var trailingDigits = regexp.MustCompile(`\s*\d+$`)

// CleanName remove a numeração no fim do nome ("Abarrotes Lupita 3" -> "Abarrotes Lupita").
func CleanName(name string) string {
	return trailingDigits.ReplaceAllString(name, "")
}

// Arrange remove duplicados, limpa os nomes e ordena:
// regulares antes de extemporâneos, extras por último, e nome dentro de cada grupo.
func Arrange(clients []DueClient) []DueClient {
	seen := make(map[string]bool, len(clients))
	out := make([]DueClient, 0, len(clients))

	for _, c := range clients {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		c.Name = CleanName(c.Name)
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b DueClient) int {
		if a.IsExtra != b.IsExtra {
			if a.IsExtra {
				return 1
			}
			return -1
		}
		if a.IsExtemporaneous != b.IsExtemporaneous {
			if a.IsExtemporaneous {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return out
}

func IDs(clients []DueClient) []string {
	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return ids
}

func Contains(clients []DueClient, clientID string) bool {
	return slices.ContainsFunc(clients, func(c DueClient) bool {
		return c.ID == clientID
	})
}

// First devolve o primeiro cliente não extra, usado como ponto de partida da rota.
func First(clients []DueClient) (DueClient, bool) {
	for _, c := range clients {
		if !c.IsExtra {
			return c, true
		}
	}
	return DueClient{}, false
}
