package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]dataset.Transaction{
		{Date: day(t, "2024-01-01"), Product: "Laptop", Category: "Tech", Region: "North", Quantity: 2, Sales: 2400},
		{Date: day(t, "2024-01-01"), Product: "Mouse", Category: "Tech", Region: "South", Quantity: 5, Sales: 125},
		{Date: day(t, "2024-01-02"), Product: "Desk", Category: "Furniture", Region: "North", Quantity: 1, Sales: 600},
		{Date: day(t, "2024-01-03"), Product: "Laptop", Category: "Tech", Region: "East", Quantity: 1, Sales: 1200},
		{Date: day(t, "2024-01-03"), Product: "Chair", Category: "Furniture", Region: "South", Quantity: 4, Sales: 480},
	})
	require.NoError(t, err)
	return ds
}

func TestAggregateSumConservation(t *testing.T) {
	ds := testDataset(t)

	for _, by := range []GroupKey{GroupCategory, GroupRegion, GroupProduct, GroupDate} {
		agg, err := Aggregate(ds, by, MeasureSales, ReduceSum)
		require.NoError(t, err)

		var total float64
		for _, b := range agg.Buckets {
			total += b.Value
		}
		require.InDelta(t, 4805.0, total, 1e-9, "group key %s", by)
	}
}

func TestAggregateDescendingOrderWithStableTies(t *testing.T) {
	ds, err := dataset.New([]dataset.Transaction{
		{Date: time.Now(), Category: "B", Sales: 50},
		{Date: time.Now(), Category: "A", Sales: 50},
		{Date: time.Now(), Category: "C", Sales: 80},
	})
	require.NoError(t, err)

	agg, err := Aggregate(ds, GroupCategory, MeasureSales, ReduceSum)
	require.NoError(t, err)

	keys := []string{agg.Buckets[0].Key, agg.Buckets[1].Key, agg.Buckets[2].Key}
	// Ties keep first-seen key order: B before A.
	require.Equal(t, []string{"C", "B", "A"}, keys)
}

func TestAggregateDateChronological(t *testing.T) {
	ds := testDataset(t)

	agg, err := Aggregate(ds, GroupDate, MeasureSales, ReduceSum)
	require.NoError(t, err)
	require.Len(t, agg.Buckets, 3)
	for i := 1; i < len(agg.Buckets); i++ {
		require.True(t, agg.Buckets[i].Date.After(agg.Buckets[i-1].Date))
	}
	require.InDelta(t, 2525.0, agg.Buckets[0].Value, 1e-9)
}

func TestAggregateReducers(t *testing.T) {
	ds := testDataset(t)

	mean, err := Aggregate(ds, GroupCategory, MeasureSales, ReduceMean)
	require.NoError(t, err)
	byKey := map[string]float64{}
	for _, b := range mean.Buckets {
		byKey[b.Key] = b.Value
	}
	require.InDelta(t, (2400.0+125+1200)/3, byKey["Tech"], 1e-9)
	require.InDelta(t, (600.0+480)/2, byKey["Furniture"], 1e-9)

	count, err := Aggregate(ds, GroupRegion, MeasureQuantity, ReduceCount)
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, b := range count.Buckets {
		counts[b.Key] = b.Value
	}
	require.Equal(t, map[string]float64{"North": 2, "South": 2, "East": 1}, counts)
}

func TestAggregateSingleRow(t *testing.T) {
	ds, err := dataset.New([]dataset.Transaction{
		{Date: time.Now(), Category: "Tech", Sales: 99.5, Quantity: 1},
	})
	require.NoError(t, err)

	agg, err := Aggregate(ds, GroupCategory, MeasureSales, ReduceSum)
	require.NoError(t, err)
	require.Len(t, agg.Buckets, 1)
	require.InDelta(t, 99.5, agg.Buckets[0].Value, 1e-12)
}

func TestAggregateInvalidArguments(t *testing.T) {
	ds := testDataset(t)

	_, err := Aggregate(ds, "warehouse", MeasureSales, ReduceSum)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Aggregate(ds, GroupCategory, "discount", ReduceSum)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Aggregate(ds, GroupCategory, MeasureSales, "max")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAggregateIdempotent(t *testing.T) {
	ds := testDataset(t)

	first, err := Aggregate(ds, GroupProduct, MeasureSales, ReduceSum)
	require.NoError(t, err)
	second, err := Aggregate(ds, GroupProduct, MeasureSales, ReduceSum)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDailySalesAscending(t *testing.T) {
	ds := testDataset(t)

	series, err := DailySales(ds)
	require.NoError(t, err)
	require.Len(t, series, 3)
	require.InDelta(t, 2525.0, series[0].Value, 1e-9)
	require.InDelta(t, 600.0, series[1].Value, 1e-9)
	require.InDelta(t, 1680.0, series[2].Value, 1e-9)
}
