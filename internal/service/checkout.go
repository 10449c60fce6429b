package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// toCents converts a decimal amount to integer minor units, rounding half up.
// Payment APIs take integer cents; floats never touch money here.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// cartSignature is a stable hash over sorted "{productSizeID}:{quantity}"
// tokens. Any content change yields a different signature, so a replayed
// attempt id cannot charge stale cart contents. The 24-hex-char prefix is
// plenty for collision resistance at this scale.
func cartSignature(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s:%d", it.ProductSizeID, it.Quantity))
	}
	sort.Strings(parts)
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:24]
}

// buildIdempotencyKey makes retried processor calls under the same client
// attempt reuse one authorization, while any cart change produces a new key.
func buildIdempotencyKey(userID uuid.UUID, cartID uuid.UUID, amountCents int64, cartSig, attemptID string) string {
	return fmt.Sprintf("pi_u%s_c%s_a%d_%s_att%s", userID, cartID, amountCents, cartSig, attemptID)
}

// publicIDAlphabet avoids visually ambiguous characters (no O/0, I/1).
const publicIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const publicIDSuffixLen = 6

// genPublicID returns a human-facing order number, TR-YYYYMMDD-XXXXXX.
func genPublicID(now time.Time) (string, error) {
	var sb strings.Builder
	for i := 0; i < publicIDSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(publicIDAlphabet))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(publicIDAlphabet[n.Int64()])
	}
	return fmt.Sprintf("TR-%s-%s", now.Format("20060102"), sb.String()), nil
}
