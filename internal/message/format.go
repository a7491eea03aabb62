// internal/message/format.go
package message

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fermaeda/procurement-backend/internal/config"
	"github.com/fermaeda/procurement-backend/internal/domain"
)

const divider = "------------------------------"

// Formatter renders supplier order sheets in the plain-text shape the
// store sends out. It owns no state besides the store identity.
type Formatter struct {
	store config.StoreConfig
}

func NewFormatter(store config.StoreConfig) *Formatter {
	return &Formatter{store: store}
}

// OrderSheet renders one supplier's order. The policy is optional: a
// supplier without configured contact details still gets a sheet.
func (f *Formatter) OrderSheet(supplier string, items map[string]int, date time.Time, policy *domain.SupplierPolicy) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ORDER FOR %s\n", supplier)
	fmt.Fprintf(&b, "Date: %s\n", date.Format("02.01.2006"))
	fmt.Fprintf(&b, "Store: %s\n", f.store.Name)
	fmt.Fprintf(&b, "Phone: %s\n", f.store.Phone)
	fmt.Fprintf(&b, "Contact: %s\n", f.store.ContactPerson)
	b.WriteString(divider + "\n")

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %d pcs\n", name, items[name])
		total += items[name]
	}

	fmt.Fprintf(&b, "\nTOTAL: %d pcs\n", total)
	b.WriteString(divider + "\n")

	if policy != nil {
		fmt.Fprintf(&b, "Supplier phone: %s\n", orDefault(policy.Phone, "not set"))
		fmt.Fprintf(&b, "Manager: %s\n", orDefault(policy.ContactPerson, "not set"))
		fmt.Fprintf(&b, "Deadline: %s\n", policy.Deadline)
		if policy.Notes != "" {
			fmt.Fprintf(&b, "Note: %s\n", policy.Notes)
		}
	}

	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
