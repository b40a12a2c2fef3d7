package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/camden-git/photoopsbackend/models"
	"github.com/camden-git/photoopsbackend/repository"
)

// ContactStats summarizes one contacts import pass.
type ContactStats struct {
	Created int
	Updated int
	Skipped int
}

// Contacts reconciles ShootProof contact export rows into family records:
// one family per derived surname key, created on first sighting and
// sparsely merged on every later one.
type Contacts struct {
	Families repository.FamilyRepositoryInterface
	DryRun   bool
	Out      io.Writer
}

// NewContacts creates a contacts reconciler writing progress to stdout.
func NewContacts(families repository.FamilyRepositoryInterface, dryRun bool) *Contacts {
	return &Contacts{Families: families, DryRun: dryRun, Out: os.Stdout}
}

// Run processes every row from the source. Rows are handled independently:
// a row without a last name is skipped, and optional fields that fail to
// parse degrade to absent rather than failing the row. Only store errors
// abort the pass.
func (c *Contacts) Run(rows Source) (ContactStats, error) {
	var stats ContactStats

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("skipping unreadable contact row: %v", err)
			stats.Skipped++
			continue
		}

		lastName := row.Get("Last Name")
		if lastName == "" {
			// a family cannot be identified without a surname
			stats.Skipped++
			continue
		}

		key := DeriveFamilyKey(lastName)

		existing, err := c.Families.GetByKey(key)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return stats, fmt.Errorf("family lookup failed for %s: %w", key, err)
		}

		family := buildFamily(key, row)

		if existing != nil {
			if !c.DryRun {
				if err := c.Families.Merge(key, mergeFields(family)); err != nil {
					return stats, err
				}
			}
			stats.Updated++
			fmt.Fprintf(c.Out, "  Updated: %s\n", lastName)
		} else {
			if !c.DryRun {
				if err := c.Families.Create(family); err != nil {
					return stats, err
				}
			}
			stats.Created++
			fmt.Fprintf(c.Out, "  Created: %s\n", lastName)
		}
	}

	fmt.Fprintf(c.Out, "\nContacts summary: %d created, %d updated, %d skipped\n",
		stats.Created, stats.Updated, stats.Skipped)
	return stats, nil
}

// buildFamily assembles the sparse field set for one contact row. Nil
// pointer fields mean "not supplied", so a merge never erases previously
// stored values with blanks. ExternalContactID stays nil when the source
// id isn't numeric.
func buildFamily(key string, row Record) *models.Family {
	firstName := row.Get("First Name")
	lastName := row.Get("Last Name")

	fullName := lastName
	if firstName != "" {
		fullName = firstName + " " + lastName
	}

	family := &models.Family{
		ID:       key,
		Name:     fullName,
		LastName: lastName,
	}

	if contactID := row.Get("Contact ID"); isAllDigits(contactID) {
		if id, err := strconv.ParseInt(contactID, 10, 64); err == nil {
			family.ExternalContactID = &id
		}
	}
	if email := row.Get("Email"); email != "" {
		family.DeliveryEmail = &email
	}
	if phone := row.Get("Phone"); phone != "" {
		family.Phone = &phone
	}
	if galleries := row.Get("Galleries"); galleries != "" {
		family.Galleries = splitGalleries(galleries)
	}

	return family
}

// mergeFields converts the sparse field set into the column map for a
// partial update. external_contact_id is always present (NULL when the
// source id wasn't numeric); the optional fields appear only when the row
// supplied them.
func mergeFields(f *models.Family) map[string]interface{} {
	fields := map[string]interface{}{
		"name":      f.Name,
		"last_name": f.LastName,
	}
	if f.ExternalContactID != nil {
		fields["external_contact_id"] = *f.ExternalContactID
	} else {
		fields["external_contact_id"] = nil
	}
	if f.DeliveryEmail != nil {
		fields["delivery_email"] = *f.DeliveryEmail
	}
	if f.Phone != nil {
		fields["phone"] = *f.Phone
	}
	if f.Galleries != nil {
		fields["galleries"] = f.Galleries
	}
	return fields
}

// splitGalleries splits the comma-separated galleries column, trimming
// each label.
func splitGalleries(raw string) models.GalleryList {
	parts := strings.Split(raw, ",")
	galleries := make(models.GalleryList, 0, len(parts))
	for _, p := range parts {
		galleries = append(galleries, strings.TrimSpace(p))
	}
	return galleries
}
