package commands

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// CacheKey computes a stable digest of (demand, config) for
// ports.ResultCache lookups: same input always maps to the same key, and
// any change to either the demand matrix or a config field changes it.
func CacheKey(demand domain.DemandMatrix, cfg domain.Config) string {
	h := sha256.New()
	for day := 0; day < domain.DaysInWeek; day++ {
		for hour := 0; hour < domain.HoursInDay; hour++ {
			writeInt(h, demand[day][hour])
		}
	}
	writeInt(h, cfg.ProductivityRate)
	writeInt(h, cfg.PTCapPct)
	writeInt(h, cfg.WeekenderCapPct)
	if cfg.AllowWeekendDayOff {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	writeInt(h, int(cfg.CoverageModel))
	for _, off := range cfg.EffectiveBreakOffsets() {
		writeInt(h, off)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeInt(h interface{ Write([]byte) (int, error) }, v int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}
