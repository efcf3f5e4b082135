package utils

import (
	rndm "math/rand"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digitRunes = []rune("0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateRandomDigitString creates a random numeric string of length n.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Validation ---

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil && !strings.ContainsAny(email, " <>")
}

var timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// MinuteOfDay parses an "HH:MM" string into minutes since midnight.
// Returns -1 for empty or unparseable values so they sort first,
// matching where blank times used to land.
func MinuteOfDay(s string) int {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return -1
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return -1
	}
	return h*60 + min
}
