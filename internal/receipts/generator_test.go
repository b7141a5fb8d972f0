package receipts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboma-backend/internal/models"
	"mboma-backend/internal/timeutil"
)

func sampleReceipt() *models.Receipt {
	date := time.Date(2026, 3, 14, 10, 30, 0, 0, timeutil.EAT)
	return &models.Receipt{
		Number:       "RCP1001",
		Date:         date,
		CustomerName: "Wanjiku Kamau",
		Phone:        "+254711000111",
		Email:        "wanjiku@example.com",
		HouseType:    "Bedsitter",
		HouseAddress: "Sunrise Court, Room 4B",
		Amount:       8000,
		Method:       models.PaymentMethodMpesa,
	}
}

func TestRenderText(t *testing.T) {
	rcpt := sampleReceipt()
	want := "========== PAYMENT RECEIPT ==========\n" +
		"Receipt Number: RCP1001\n" +
		"Date: 2026-03-14 10:30:00\n" +
		"Customer: Wanjiku Kamau\n" +
		"Phone: +254711000111\n" +
		"Email: wanjiku@example.com\n" +
		"Property: Bedsitter at Sunrise Court, Room 4B\n" +
		"Amount Paid: KES 8000.00\n" +
		"Payment Method: M-Pesa\n" +
		"Status: PAID\n" +
		"======================================\n"

	assert.Equal(t, want, RenderText(rcpt))
}

func TestIssueWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	gen, err := NewGenerator(dir, nil)
	require.NoError(t, err)

	rcpt := sampleReceipt()
	require.NoError(t, gen.Issue(context.Background(), rcpt))

	text, err := os.ReadFile(filepath.Join(dir, "RCP1001.txt"))
	require.NoError(t, err)
	assert.Equal(t, RenderText(rcpt), string(text))

	pdf, err := os.ReadFile(filepath.Join(dir, "RCP1001.pdf"))
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
