package utility

import (
	"net"
	"net/http"
	"strings"

	"payledger/utility/appError"
	"payledger/utility/errorcode"

	uuid "github.com/satori/go.uuid"
)

// ToUUID ... Casts a route or payload string to a uuid
func ToUUID(input string) (uuid.UUID, error) {
	id, err := uuid.FromString(input)
	if err != nil {
		return id, appError.Err{
			ErrType: errorcode.INPUT_ERR,
			ErrCode: http.StatusBadRequest,
			Err:     err,
		}
	}
	return id, nil
}

// GetIPAdress ... Resolves the caller address for request logging
func GetIPAdress(r *http.Request) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(r.Header.Get(h), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			realIP := net.ParseIP(ip)
			if realIP != nil && realIP.IsGlobalUnicast() {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
