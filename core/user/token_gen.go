package user

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/szkolix/backend/core"
)

var (
	tokenSalt = []byte("szkolix.backend.core.user.token_gen")
	NowFunc   = time.Now // mockable

	// errors
	errInvalidToken = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")

	b32 = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// EncodeUID base64 encodes given User ID
func EncodeUID(usr User) string {
	return base64.RawURLEncoding.EncodeToString([]byte(usr.ID))
}

// decodeUID base64 decodes given UID
func decodeUID(uid string) (string, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return "", err
	}
	return string(idBytes), nil
}

// MakeToken generates a password reset token for a given User.
// The token is invalidated by use (password change) and by login.
func MakeToken(usr User) (string, error) {
	return tokenForTimestamp(usr, daysSince2001(NowFunc()))
}

// tokenForTimestamp signs the user's reset-sensitive state together with a
// day-granular timestamp. The timestamp rides along in the token so the
// signature can be recomputed on verification without any server-side state.
func tokenForTimestamp(usr User, ts int) (string, error) {
	sig, err := sign(usr, ts)
	if err != nil {
		return "", err
	}
	return b32.EncodeToString([]byte(strconv.Itoa(ts))) + "-" + sig, nil
}

// verifyToken checks that a password reset token for a given User is valid.
func verifyToken(usr User, token string) error {
	if token == "" {
		return errInvalidToken
	}
	parts := strings.SplitN(token, "-", 2)
	if len(parts) < 2 {
		return errInvalidToken
	}

	data, err := b32.DecodeString(parts[0])
	if err != nil {
		return errInvalidToken
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return errInvalidToken
	}

	// recompute and compare; any change to the signed state breaks this
	expected, err := tokenForTimestamp(usr, ts)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 0 {
		return errInvalidToken
	}

	if (daysSince2001(time.Now()) - ts) > int(core.Conf.PasswordResetTimeoutDelta/(24*time.Hour)) {
		return errTokenExpired
	}
	return nil
}

// sign HMACs the fields whose change must kill outstanding tokens: the
// password hash (token used) and the last login (account accessed anyway).
func sign(usr User, ts int) (string, error) {
	key := sha256.Sum256(append(tokenSalt, core.Conf.SecretKey...))
	h := hmac.New(sha256.New, key[:])

	if _, err := h.Write([]byte(usr.ID)); err != nil {
		return "", err
	}
	if _, err := h.Write(usr.PasswordHash); err != nil {
		return "", err
	}
	if !usr.LastLogin.IsZero() {
		if _, err := h.Write([]byte(usr.LastLogin.String())); err != nil {
			return "", err
		}
	}
	if _, err := h.Write([]byte(strconv.Itoa(ts))); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

func daysSince2001(t time.Time) int {
	ref := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(t.Sub(ref).Hours() / 24))
}
