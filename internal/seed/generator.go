package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"schema-gate/internal/schema"
)

// generateValue produces a plausible value for one column. The registry
// is fixed, so generation is keyed on the column name directly instead
// of inferring meaning from the schema.
func generateValue(e *schema.Entity, c *schema.Column, index int) interface{} {
	switch c.Type {
	case schema.TypeEnum:
		return c.Enum.Values[gofakeit.Number(0, len(c.Enum.Values)-1)]
	case schema.TypeTimestamp:
		return time.Now().UTC()
	case schema.TypeInt:
		return gofakeit.Number(1, 10)
	case schema.TypeText:
		return gofakeit.Paragraph(1, 3, 12, " ")
	}

	switch c.Name {
	case "name":
		if e.Name == "Department" || e.Name == "Degree" {
			val := gofakeit.JobDescriptor() + " " + gofakeit.NounAbstract()
			if c.Unique {
				val = fmt.Sprintf("%s %d", val, index)
			}
			return truncate(val, c.Length)
		}
		return truncate(gofakeit.Name(), c.Length)
	case "email":
		// Index keeps re-runs from colliding on the unique constraint
		// too often.
		return truncate(fmt.Sprintf("%s.%d@%s", gofakeit.Username(), index, gofakeit.DomainName()), c.Length)
	case "password_hash":
		return truncate(gofakeit.Password(true, true, true, false, false, 60), c.Length)
	case "code":
		return truncate(fmt.Sprintf("%s-%03d", gofakeit.LetterN(3), index), c.Length)
	case "title", "subject":
		return truncate(gofakeit.Sentence(5), c.Length)
	default:
		return truncate(gofakeit.Word(), c.Length)
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
