package redis

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"biorhythms-server/biorhythm"
	"biorhythms-server/db"
)

// BIRTH_DATE_KEY holds the birth date as a decimal epoch day.
const BIRTH_DATE_KEY = "dob_epoch_day"

// SettingsDAO persists the single user setting, the birth date.
type SettingsDAO struct {
	client db.KVClient
}

// NewSettingsDAO initializes a SettingsDAO with the key-value client.
func NewSettingsDAO(client db.KVClient) *SettingsDAO {
	return &SettingsDAO{client: client}
}

// GetBirthDate returns the stored birth date. ok is false when none is set.
func (dao *SettingsDAO) GetBirthDate() (d biorhythm.Date, ok bool, err error) {
	str, err := dao.client.Get(BIRTH_DATE_KEY)
	if errors.Is(err, db.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get birth date: %w", err)
	}

	epochDay, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt birth date value %q: %w", str, err)
	}
	return biorhythm.Date(epochDay), true, nil
}

// SetBirthDate stores d, replacing any previous value.
func (dao *SettingsDAO) SetBirthDate(d biorhythm.Date) error {
	if err := dao.client.Set(BIRTH_DATE_KEY, strconv.FormatInt(d.EpochDay(), 10)); err != nil {
		return fmt.Errorf("failed to set birth date: %w", err)
	}
	slog.Info("Birth date saved",
		slog.String("component", "SettingsDAO"),
		slog.String("birthDate", d.String()))
	return nil
}

func (dao *SettingsDAO) ClearBirthDate() error {
	if err := dao.client.Del(BIRTH_DATE_KEY); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", BIRTH_DATE_KEY, err)
	}
	slog.Info("Birth date cleared", slog.String("component", "SettingsDAO"))
	return nil
}
