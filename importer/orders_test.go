package importer

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrders(families *fakeFamilyRepo, orders *fakeOrderRepo, dryRun bool) (*Orders, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Orders{Families: families, Orders: orders, DryRun: dryRun, Out: out}, out
}

func orderRow(overrides map[string]string) Record {
	cols := map[string]string{
		"Order ID":       "1001",
		"Order Date":     "Jan 2, 2025",
		"Gallery":        "Jane Doe",
		"Customer Name":  "Jane Doe",
		"Customer Email": "jane@example.com",
		"Total Sales":    "150.00",
		"Profit":         "75.00",
		"Items Ordered":  "8x10 Print\n5x7 Print",
	}
	for k, v := range overrides {
		cols[k] = v
	}
	return newRecord(cols)
}

func TestOrdersCreatesStubFamilyOrderAndLink(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	stats, err := imp.Run(sourceOf(orderRow(nil)))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, []string{"Doe"}, stats.NewFamilies)

	family, err := families.GetByKey("doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", family.Name)
	assert.Equal(t, "Doe", family.LastName)
	require.NotNil(t, family.DeliveryEmail)
	assert.Equal(t, "jane@example.com", *family.DeliveryEmail)

	order, err := orders.GetByExternalID(1001)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T00:00:00", order.OrderDate)
	assert.Equal(t, 150.0, order.TotalSales)
	assert.Equal(t, 75.0, order.Profit)
	assert.False(t, order.IsComp)
	assert.Equal(t, 2, order.ItemCount)

	require.Len(t, orders.links, 1)
	assert.Equal(t, "doe", orders.links[0].FamilyID)
	assert.Equal(t, order.ID, orders.links[0].OrderID)
	assert.Equal(t, 150.0, orders.links[0].Amount)
	assert.Equal(t, "2025-01-02T00:00:00", orders.links[0].OrderDate)
}

func TestOrdersExistingFamilyIsNotStubbed(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	_, err := newTestContacts(families, false).Run(sourceOf(
		newRecord(map[string]string{"Last Name": "Doe", "Phone": "555-0100"}),
	))
	require.NoError(t, err)

	stats, err := imp.Run(sourceOf(orderRow(nil)))
	require.NoError(t, err)

	assert.Empty(t, stats.NewFamilies)

	// the pre-existing family record must be untouched
	family, err := families.GetByKey("doe")
	require.NoError(t, err)
	require.NotNil(t, family.Phone)
	assert.Equal(t, "555-0100", *family.Phone)
}

func TestOrdersReimportIsIdempotent(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()

	rows := []Record{
		orderRow(nil),
		orderRow(map[string]string{"Order ID": "1002", "Gallery": "Smith"}),
	}

	imp, _ := newTestOrders(families, orders, false)
	first, err := imp.Run(sourceOf(rows...))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	imp2, _ := newTestOrders(families, orders, false)
	second, err := imp2.Run(sourceOf(rows...))
	require.NoError(t, err)

	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, orders.orders, 2)
	assert.Len(t, orders.links, 2)
}

func TestOrdersSkipsUnidentifiableRows(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	stats, err := imp.Run(sourceOf(
		orderRow(map[string]string{"Order ID": ""}),
		orderRow(map[string]string{"Gallery": ""}),
	))
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 2, stats.Skipped)
	assert.Empty(t, orders.orders)
}

func TestOrdersNonNumericOrderIDIsFatal(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	_, err := imp.Run(sourceOf(orderRow(map[string]string{"Order ID": "SP-1001"})))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-numeric order id")
}

func TestOrdersCompDetection(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, out := newTestOrders(families, orders, false)

	_, err := imp.Run(sourceOf(
		orderRow(map[string]string{"Order ID": "2001", "Total Sales": "0"}),
		orderRow(map[string]string{"Order ID": "2002", "Total Sales": ""}),
		orderRow(map[string]string{"Order ID": "2003", "Total Sales": "150.00"}),
	))
	require.NoError(t, err)

	for _, id := range []int64{2001, 2002} {
		order, err := orders.GetByExternalID(id)
		require.NoError(t, err)
		assert.True(t, order.IsComp, "order %d should be a comp", id)
	}

	priced, err := orders.GetByExternalID(2003)
	require.NoError(t, err)
	assert.False(t, priced.IsComp)

	assert.Contains(t, out.String(), "$0 (comp)")
	assert.Contains(t, out.String(), "$150.00")
}

func TestOrdersBadProfitDoesNotAffectTotal(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	_, err := imp.Run(sourceOf(orderRow(map[string]string{"Total Sales": "1,200.00", "Profit": "n/a"})))
	require.NoError(t, err)

	order, err := orders.GetByExternalID(1001)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, order.TotalSales)
	assert.Equal(t, 0.0, order.Profit)
	assert.False(t, order.IsComp)
}

func TestOrdersUnparseableDateStoredVerbatim(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	_, err := imp.Run(sourceOf(orderRow(map[string]string{"Order Date": "garbage"})))
	require.NoError(t, err)

	order, err := orders.GetByExternalID(1001)
	require.NoError(t, err)
	assert.Equal(t, "garbage", order.OrderDate)
}

func TestOrdersTruncatesLongItemsText(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, _ := newTestOrders(families, orders, false)

	items := strings.Repeat("8x10 Print\n", 100)
	_, err := imp.Run(sourceOf(orderRow(map[string]string{"Items Ordered": items})))
	require.NoError(t, err)

	order, err := orders.GetByExternalID(1001)
	require.NoError(t, err)
	require.NotNil(t, order.ItemsRaw)
	assert.Len(t, *order.ItemsRaw, 500)
}

func TestOrdersDryRunWritesNothing(t *testing.T) {
	rows := []Record{
		orderRow(nil),
		orderRow(map[string]string{"Order ID": "1002", "Gallery": "Smith", "Total Sales": "0"}),
		orderRow(map[string]string{"Order ID": ""}),
	}

	dryFamilies := newFakeFamilyRepo()
	dryOrders := newFakeOrderRepo()
	dryImp, _ := newTestOrders(dryFamilies, dryOrders, true)
	dryStats, err := dryImp.Run(sourceOf(rows...))
	require.NoError(t, err)

	assert.Empty(t, dryFamilies.families)
	assert.Empty(t, dryOrders.orders)
	assert.Empty(t, dryOrders.links)

	realFamilies := newFakeFamilyRepo()
	realOrders := newFakeOrderRepo()
	realImp, _ := newTestOrders(realFamilies, realOrders, false)
	realStats, err := realImp.Run(sourceOf(rows...))
	require.NoError(t, err)

	assert.Equal(t, realStats, dryStats)
}

func TestOrdersNewFamilyPreviewIsBounded(t *testing.T) {
	families := newFakeFamilyRepo()
	orders := newFakeOrderRepo()
	imp, out := newTestOrders(families, orders, false)

	surnames := []string{"Adams", "Baker", "Clark", "Davis", "Evans", "Frank",
		"Green", "Hayes", "Irwin", "Jones", "Kline", "Lewis"}
	rows := make([]Record, 0, len(surnames))
	for i, surname := range surnames {
		rows = append(rows, orderRow(map[string]string{
			"Order ID": strconv.Itoa(3000 + i),
			"Gallery":  "The " + surname,
		}))
	}

	stats, err := imp.Run(sourceOf(rows...))
	require.NoError(t, err)

	assert.Len(t, stats.NewFamilies, len(surnames))
	assert.Contains(t, out.String(), "Created 12 new families from orders")
	assert.Contains(t, out.String(), "Jones...")
	assert.NotContains(t, out.String(), "Kline, Lewis")
}
