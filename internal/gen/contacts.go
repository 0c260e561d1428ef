package gen

import (
	"time"

	"salesline/internal/config"
	"salesline/internal/domain"
)

// Contacts generates one to a few contacts for every lead. Each contact
// inherits the lead's account link and appears within MaxLagDays of the
// lead.
func Contacts(r *Rand, cfg config.ContactsConfig, leads []domain.Lead) []domain.Contact {
	emails := newUniquer()
	var contacts []domain.Contact
	for _, l := range leads {
		n := r.PickCount(cfg.PerLead)
		for i := 0; i < n; i++ {
			lag := time.Duration(r.Between(0, cfg.MaxLagDays))*24*time.Hour +
				time.Duration(r.Between(0, 23))*time.Hour
			contacts = append(contacts, domain.Contact{
				ID:        r.UUID(),
				LeadID:    l.ID,
				AccountID: l.AccountID,
				CreatedAt: l.CreatedAt.Add(lag),
				Email:     emails.takeEmail(r.personEmail),
				Title:     r.Pick(cfg.Titles),
				Geo:       r.Pick(cfg.Geos),
			})
		}
	}
	return contacts
}
