package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func testReport() *domain.Report {
	raws := []domain.RawSession{
		{ID: "s1", CreatedAt: domain.ParseTimestamp("2024-01-02"), SaveType: strPtr("DISCOUNT"), BlueprintID: strPtr("B1"),
			Customer: &domain.RawCustomer{ID: strPtr("C1"), PlanPrice: domain.NewCents(2000)}},
		{ID: "s2", CreatedAt: domain.ParseTimestamp("2024-01-03"), Canceled: boolPtr(true), BlueprintID: strPtr("B1"),
			SurveyChoiceValue: strPtr("too_expensive"), Customer: &domain.RawCustomer{ID: strPtr("C2"), PlanPrice: domain.NewCents(1500)}},
		{ID: "s3", CreatedAt: domain.ParseTimestamp("2024-02-01"), SaveType: strPtr("ABANDON"), Canceled: boolPtr(true), BlueprintID: strPtr("B2"),
			Customer: &domain.RawCustomer{ID: strPtr("C1"), PlanPrice: domain.NewCents(1000)}},
	}
	return domain.BuildReport(raws, domain.Window{})
}

func TestBuild_PeriodsCSV(t *testing.T) {
	tbl, err := Build(testReport(), Request{Table: TablePeriods, Granularity: domain.Monthly})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "period,total,accepted"))
	assert.Equal(t, "2024-02,1,0,0.0,1,100.0,0.00,10.00,-10.00,,", lines[1])
	assert.Equal(t, "2024-01,2,1,50.0,1,50.0,20.00,15.00,5.00,DISCOUNT:1,too_expensive:1", lines[2])
}

func TestBuild_FlowPartition(t *testing.T) {
	tbl, err := Build(testReport(), Request{Table: TablePeriods, Granularity: domain.Monthly, Partition: domain.PartitionFlow2})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "2024-02", tbl.Rows[0][0])
}

func TestBuild_ReactivationJSON(t *testing.T) {
	tbl, err := Build(testReport(), Request{Table: TableReactivation, Granularity: domain.Monthly})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, FormatJSON))
	assert.Contains(t, buf.String(), `"reactivatedCustomers": 1`)
	assert.Contains(t, buf.String(), `"period": "2024-02"`)
}

func TestBuild_Offers(t *testing.T) {
	tbl, err := Build(testReport(), Request{Table: TableOffers, Granularity: domain.Weekly})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"DISCOUNT", "1", "20.00", "20.00"}, tbl.Rows[0])
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(testReport(), Request{Table: "customers"})
	assert.Error(t, err)

	_, err = Build(testReport(), Request{Table: TablePeriods, Partition: "flow9"})
	assert.Error(t, err)

	tbl, err := Build(testReport(), Request{Table: TableOffers})
	require.NoError(t, err)
	assert.Error(t, Write(&bytes.Buffer{}, tbl, "xml"))
}

func TestWrite_EmptyJSONIsArray(t *testing.T) {
	tbl, err := Build(domain.BuildReport(nil, domain.Window{}), Request{Table: TablePeriods, Granularity: domain.Weekly})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, FormatJSON))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
