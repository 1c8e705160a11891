// Package sequence mints the human-readable identifiers (PAT000001,
// APT000042, WRD0007) used alongside the uuid primary keys.
//
// The next ordinal comes from a per-kind counter row incremented with a
// single UPDATE statement, never from counting existing records: two
// concurrent creations that both count n would both mint n+1. Because the
// increment runs inside the caller's transaction, an aborted create rolls the
// counter back with it and no identifier is consumed without a record.
package sequence

import (
	"fmt"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// Kind identifies an entity family with its own counter.
type Kind string

const (
	KindPatient       Kind = "patient"
	KindAppointment   Kind = "appointment"
	KindInvoice       Kind = "invoice"
	KindInventory     Kind = "inventory"
	KindWaste         Kind = "waste"
	KindWard          Kind = "ward"
	KindMedicalRecord Kind = "medical_record"
)

type format struct {
	prefix string
	width  int
}

// Invoice and inventory intentionally share the INV prefix; their counters
// are still independent.
var formats = map[Kind]format{
	KindPatient:       {"PAT", 6},
	KindAppointment:   {"APT", 6},
	KindInvoice:       {"INV", 6},
	KindInventory:     {"INV", 6},
	KindWaste:         {"WAS", 6},
	KindWard:          {"WRD", 4},
	KindMedicalRecord: {"REC", 6},
}

// Next allocates the next identifier for kind inside tx. It must be called
// within the transaction that creates the owning record so that allocation
// and creation commit or roll back together.
func Next(tx *gorm.DB, kind Kind) (string, error) {
	_, ok := formats[kind]
	if !ok {
		return "", fmt.Errorf("unknown sequence kind %q", kind)
	}

	res := tx.Model(&models.SequenceCounter{}).
		Where("kind = ?", string(kind)).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", fmt.Errorf("increment %s counter: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		// First allocation for this kind. A concurrent first allocation
		// loses the unique-index race on insert and increments instead.
		if err := tx.Create(&models.SequenceCounter{Kind: string(kind), Value: 1}).Error; err != nil {
			retry := tx.Model(&models.SequenceCounter{}).
				Where("kind = ?", string(kind)).
				Update("value", gorm.Expr("value + 1"))
			if retry.Error != nil || retry.RowsAffected == 0 {
				return "", fmt.Errorf("initialize %s counter: %w", kind, err)
			}
		}
	}

	var counter models.SequenceCounter
	if err := tx.Where("kind = ?", string(kind)).First(&counter).Error; err != nil {
		return "", fmt.Errorf("read %s counter: %w", kind, err)
	}

	return FormatID(kind, counter.Value), nil
}

// FormatID renders an ordinal in a kind's prefixed zero-padded form.
func FormatID(kind Kind, n int64) string {
	f := formats[kind]
	return fmt.Sprintf("%s%0*d", f.prefix, f.width, n)
}
