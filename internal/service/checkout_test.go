package service

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"50.00", 5000},
		{"0.00", 0},
		{"0.01", 1},
		{"19.99", 1999},
		{"10.005", 1001}, // round half up
		{"10.004", 1000},
		{"123.456", 12346},
	}
	for _, tc := range cases {
		got := toCents(decimal.RequireFromString(tc.amount))
		if got != tc.want {
			t.Errorf("toCents(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestToCents_CartTotal(t *testing.T) {
	// 1 x 20.00 + 2 x 15.00 = 50.00 -> 5000 cents
	total := decimal.RequireFromString("20.00").
		Add(decimal.RequireFromString("15.00").Mul(decimal.NewFromInt(2)))
	if got := toCents(total); got != 5000 {
		t.Fatalf("expected 5000 cents, got %d", got)
	}
}

func TestCartSignature(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	items := []models.CartItem{
		{ProductSizeID: a, Quantity: 1},
		{ProductSizeID: b, Quantity: 2},
	}
	reversed := []models.CartItem{
		{ProductSizeID: b, Quantity: 2},
		{ProductSizeID: a, Quantity: 1},
	}

	sig := cartSignature(items)
	if len(sig) != 24 {
		t.Fatalf("signature length = %d, want 24", len(sig))
	}
	if !regexp.MustCompile(`^[0-9a-f]{24}$`).MatchString(sig) {
		t.Fatalf("signature is not lowercase hex: %q", sig)
	}

	if got := cartSignature(reversed); got != sig {
		t.Fatalf("signature depends on item order: %q vs %q", got, sig)
	}

	changed := []models.CartItem{
		{ProductSizeID: a, Quantity: 1},
		{ProductSizeID: b, Quantity: 3},
	}
	if got := cartSignature(changed); got == sig {
		t.Fatal("quantity change did not change the signature")
	}
}

func TestBuildIdempotencyKey(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	cartID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	key := buildIdempotencyKey(userID, cartID, 5000, "deadbeef", "att-1")
	want := "pi_u11111111-1111-1111-1111-111111111111_c22222222-2222-2222-2222-222222222222_a5000_deadbeef_attatt-1"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}

	if again := buildIdempotencyKey(userID, cartID, 5000, "deadbeef", "att-1"); again != key {
		t.Fatal("same inputs must produce the same key")
	}
	if other := buildIdempotencyKey(userID, cartID, 5001, "deadbeef", "att-1"); other == key {
		t.Fatal("different amount must produce a different key")
	}
}

func TestGenPublicID(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	id, err := genPublicID(now)
	if err != nil {
		t.Fatalf("genPublicID: %v", err)
	}
	if !regexp.MustCompile(`^TR-20260314-[A-Z2-9]{6}$`).MatchString(id) {
		t.Fatalf("unexpected public id format: %q", id)
	}
	for _, forbidden := range []string{"O", "0", "I", "1"} {
		if strings.Contains(id[len("TR-20260314-"):], forbidden) {
			t.Fatalf("public id suffix contains ambiguous character %q: %s", forbidden, id)
		}
	}
}
