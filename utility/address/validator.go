package address

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"payledger/utility/logger"
)

// Result ... Outcome of a format validation. Err is populated when Valid is false.
type Result struct {
	Valid bool   `json:"valid"`
	Err   string `json:"error,omitempty"`
}

var (
	ethAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	bech32Charset     = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	base58Alphabet    = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// Validate ... Format-validates a wallet address for the given currency symbol.
// Validation failures never propagate, a panic inside a checker is reported
// as an invalid address.
func Validate(addr string, currency string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Address validation panicked for currency %s : %+v", currency, r)
			result = Result{Valid: false, Err: "address could not be validated"}
		}
	}()

	addr = strings.TrimSpace(addr)
	if addr == "" {
		return Result{Valid: false, Err: "address is required"}
	}

	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "BTC":
		return validateBTC(addr)
	case "ETH", "USDT":
		// USDT is treated as an ERC-20 token, its addresses share the
		// Ethereum format. The equivalence is deliberate.
		return validateETH(addr)
	case "LTC":
		return validateLTC(addr)
	default:
		return Result{Valid: false, Err: fmt.Sprintf("unsupported currency (%s)", currency)}
	}
}

func validateETH(addr string) Result {
	if !ethAddressPattern.MatchString(addr) {
		return Result{Valid: false, Err: "not a valid 0x-prefixed hex address"}
	}
	return Result{Valid: true}
}

func validateBTC(addr string) Result {
	lower := strings.ToLower(addr)
	if strings.HasPrefix(lower, "bc1") {
		if isBech32Body(lower[3:]) && len(addr) >= 14 && len(addr) <= 74 {
			return Result{Valid: true}
		}
		return Result{Valid: false, Err: "not a valid bech32 address"}
	}
	if strings.HasPrefix(addr, "1") || strings.HasPrefix(addr, "3") {
		if isBase58Check(addr) {
			return Result{Valid: true}
		}
		return Result{Valid: false, Err: "base58 checksum failed"}
	}
	return Result{Valid: false, Err: "unrecognised BTC address prefix"}
}

func validateLTC(addr string) Result {
	lower := strings.ToLower(addr)
	if strings.HasPrefix(lower, "ltc1") {
		if isBech32Body(lower[4:]) && len(addr) >= 14 && len(addr) <= 74 {
			return Result{Valid: true}
		}
		return Result{Valid: false, Err: "not a valid bech32 address"}
	}
	if strings.HasPrefix(addr, "L") || strings.HasPrefix(addr, "M") || strings.HasPrefix(addr, "3") {
		if isBase58Check(addr) {
			return Result{Valid: true}
		}
		return Result{Valid: false, Err: "base58 checksum failed"}
	}
	return Result{Valid: false, Err: "unrecognised LTC address prefix"}
}

// isBase58Check decodes the address and verifies the 4-byte double-sha256
// checksum appended to base58check payloads.
func isBase58Check(addr string) bool {
	if len(addr) < 26 || len(addr) > 35 {
		return false
	}
	decoded := base58Decode(addr)
	if decoded == nil || len(decoded) < 5 {
		return false
	}
	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])

	for i := 0; i < 4; i++ {
		if checksum[i] != second[i] {
			return false
		}
	}
	return true
}

func base58Decode(input string) []byte {
	result := big.NewInt(0)
	base := big.NewInt(58)
	for _, c := range input {
		index := strings.IndexRune(base58Alphabet, c)
		if index < 0 {
			return nil
		}
		result.Mul(result, base)
		result.Add(result, big.NewInt(int64(index)))
	}
	decoded := result.Bytes()

	// leading '1's encode leading zero bytes
	leadingZeros := 0
	for _, c := range input {
		if c != '1' {
			break
		}
		leadingZeros++
	}
	return append(make([]byte, leadingZeros), decoded...)
}

func isBech32Body(body string) bool {
	if body == "" {
		return false
	}
	for _, c := range body {
		if !strings.ContainsRune(bech32Charset, c) {
			return false
		}
	}
	return true
}
