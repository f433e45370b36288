package services

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const trackingPrefix = "JOB-"

// NewTrackingCode generates a customer-facing job identifier of the
// form JOB-<unix-seconds>-<4 digits>. The digits come from a
// crypto-random source, and the column carries a unique index, so a
// same-second collision is caught on insert and retried by the
// caller.
func NewTrackingCode() string {
	id := uuid.New()
	suffix := binary.BigEndian.Uint16(id[0:2]) % 10000
	return fmt.Sprintf("%s%d-%04d", trackingPrefix, time.Now().Unix(), suffix)
}
