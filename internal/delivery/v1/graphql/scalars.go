package graphql

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout — ISO 8601 с миллисекундами в UTC, например 2024-01-02T03:04:05.000Z.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// GraphQLDate — скаляр даты: наружу ISO-строка, на вход ISO-строка.
type GraphQLDate struct {
	time.Time
}

func (GraphQLDate) ImplementsGraphQLType(name string) bool {
	return name == "GraphQLDate"
}

func (d *GraphQLDate) UnmarshalGraphQL(input interface{}) error {
	s, ok := input.(string)
	if !ok {
		return fmt.Errorf("GraphQLDate: expected string, got %T", input)
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("GraphQLDate: invalid date %q", s)
	}

	d.Time = t.UTC()
	return nil
}

func (d GraphQLDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(dateLayout))
}
