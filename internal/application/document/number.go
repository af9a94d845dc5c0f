package document

import (
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Prefijos de numeración por dirección.
const (
	PrefixInbound  = "IN"
	PrefixOutbound = "OUT"
)

// PrefixFor devuelve el prefijo de numeración de una dirección.
func PrefixFor(direction string) string {
	if direction == entity.DirectionOutbound {
		return PrefixOutbound
	}
	return PrefixInbound
}

// FormatNumber arma el número de documento: prefijo + YYYYMMDD + consecutivo con
// ceros a la izquierda (mínimo 3 dígitos), ej. IN20231114001.
func FormatNumber(prefix string, date time.Time, seq int) string {
	return fmt.Sprintf("%s%s%03d", prefix, date.Format("20060102"), seq)
}
