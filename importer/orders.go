package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/facette/natsort"

	"github.com/camden-git/photoopsbackend/models"
	"github.com/camden-git/photoopsbackend/repository"
)

// stubFamilyPreview bounds how many stub-family surnames the summary prints.
const stubFamilyPreview = 10

// OrderStats summarizes one orders import pass. NewFamilies holds the
// surnames of families that did not exist before order processing, sorted.
type OrderStats struct {
	Created     int
	Skipped     int
	NewFamilies []string
}

// Orders reconciles ShootProof order export rows into order records,
// attributing each to a family derived from the gallery label. Orders
// already present (by ShootProof order id) are skipped, which makes a
// re-run over the same export a no-op.
type Orders struct {
	Families repository.FamilyRepositoryInterface
	Orders   repository.OrderRepositoryInterface
	DryRun   bool
	Out      io.Writer
}

// NewOrders creates an orders reconciler writing progress to stdout.
func NewOrders(families repository.FamilyRepositoryInterface, orders repository.OrderRepositoryInterface, dryRun bool) *Orders {
	return &Orders{Families: families, Orders: orders, DryRun: dryRun, Out: os.Stdout}
}

// Run processes every row from the source. Rows missing an order id or a
// gallery label are skipped; unparseable dates and amounts degrade (raw
// string, 0.0) without failing the row. A present but non-numeric order id
// is a fatal defect and aborts the pass, as does any store error.
func (o *Orders) Run(rows Source) (OrderStats, error) {
	var stats OrderStats
	familiesNotFound := make(map[string]struct{})

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("skipping unreadable order row: %v", err)
			stats.Skipped++
			continue
		}

		orderID := row.Get("Order ID")
		gallery := row.Get("Gallery")

		if orderID == "" || gallery == "" {
			// the order can't be identified or attributed
			stats.Skipped++
			continue
		}

		externalID, err := strconv.ParseInt(orderID, 10, 64)
		if err != nil {
			return stats, fmt.Errorf("non-numeric order id %q: %w", orderID, err)
		}

		lastName := SurnameFromGallery(gallery)
		key := DeriveFamilyKey(lastName)

		existingFamily, err := o.Families.GetByKey(key)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return stats, fmt.Errorf("family lookup failed for %s: %w", key, err)
		}

		if existingFamily == nil {
			// order exports may reference customers absent from the
			// contacts export; create a minimal stub so the link has a
			// family to hang off
			familiesNotFound[lastName] = struct{}{}
			if !o.DryRun {
				if err := o.Families.Create(stubFamily(key, gallery, lastName, row.Get("Customer Email"))); err != nil {
					return stats, err
				}
			}
		}

		orderDate := normalizeOrderDate(row.Get("Order Date"))
		total := parseAmount(row.Get("Total Sales"))
		profit := parseAmount(row.Get("Profit"))
		itemsOrdered := row.Get("Items Ordered")

		existingOrder, err := o.Orders.GetByExternalID(externalID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return stats, fmt.Errorf("order lookup failed for %d: %w", externalID, err)
		}
		if existingOrder != nil {
			stats.Skipped++
			continue
		}

		order := &models.Order{
			ExternalOrderID: externalID,
			OrderDate:       orderDate,
			GalleryName:     gallery,
			CustomerName:    row.Get("Customer Name"),
			CustomerEmail:   row.Get("Customer Email"),
			TotalSales:      total,
			Profit:          profit,
			IsComp:          total == 0.0,
			ItemCount:       countItems(itemsOrdered),
			ItemsRaw:        truncateItems(itemsOrdered),
		}

		if !o.DryRun {
			if err := o.Orders.Create(order); err != nil {
				return stats, err
			}
			link := &models.FamilyOrder{
				FamilyID:  key,
				OrderID:   order.ID,
				Amount:    total,
				OrderDate: orderDate,
			}
			if err := o.Orders.CreateLink(link); err != nil {
				return stats, err
			}
		}

		stats.Created++
		if total > 0 {
			fmt.Fprintf(o.Out, "  Order #%s: %s - $%.2f\n", orderID, gallery, total)
		} else {
			fmt.Fprintf(o.Out, "  Order #%s: %s - $0 (comp)\n", orderID, gallery)
		}
	}

	stats.NewFamilies = sortedSurnames(familiesNotFound)

	fmt.Fprintf(o.Out, "\nOrders summary: %d created, %d skipped\n", stats.Created, stats.Skipped)
	if len(stats.NewFamilies) > 0 {
		preview := stats.NewFamilies
		ellipsis := ""
		if len(preview) > stubFamilyPreview {
			preview = preview[:stubFamilyPreview]
			ellipsis = "..."
		}
		fmt.Fprintf(o.Out, "Created %d new families from orders: %s%s\n",
			len(stats.NewFamilies), strings.Join(preview, ", "), ellipsis)
	}

	return stats, nil
}

// stubFamily builds the minimal family record created while processing an
// order whose family wasn't already known: full gallery label as the
// display name, the order's customer email as the delivery email.
func stubFamily(key, gallery, lastName, customerEmail string) *models.Family {
	family := &models.Family{
		ID:       key,
		Name:     gallery,
		LastName: lastName,
	}
	if customerEmail != "" {
		family.DeliveryEmail = &customerEmail
	}
	return family
}

func sortedSurnames(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	natsort.Sort(names)
	return names
}
