package system

import (
	"time"

	"github.com/google/uuid"
)

// Clock はUTCの現在時刻を返す
type Clock struct{}

func (Clock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator は注文と明細のIDを払い出す
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
