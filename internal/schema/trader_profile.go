package schema

import "journal-backend/internal/domain"

// Keys the server owns. Patches may carry them (clients often echo a full
// record back) but they are never applied.
var serverManagedKeys = []string{"id", "createdAt", "updatedAt"}

var traderProfilePatchKeys = []string{
	"userId",
	"journalName",
	"initialCapital",
	"strategy1",
	"strategy2",
	"strategy3",
	"isPro",
	"proSince",
}

// ParseNewTraderProfile validates profile creation input.
func ParseNewTraderProfile(raw map[string]any) (domain.NewTraderProfile, error) {
	r := newReader(raw)

	in := domain.NewTraderProfile{
		UserID:         r.requiredInt("userId"),
		JournalName:    r.optionalString("journalName", domain.DefaultJournalName),
		InitialCapital: r.requiredDecimal("initialCapital"),
		Strategy1:      r.optionalString("strategy1", ""),
		Strategy2:      r.optionalString("strategy2", ""),
		Strategy3:      r.optionalString("strategy3", ""),
	}

	if err := r.err(); err != nil {
		return domain.NewTraderProfile{}, err
	}
	return in, nil
}

// ParseTraderProfilePatch validates a partial profile update.
func ParseTraderProfilePatch(raw map[string]any) (domain.TraderProfilePatch, error) {
	r := newReader(raw)
	r.rejectUnknown(traderProfilePatchKeys, serverManagedKeys)

	patch := domain.TraderProfilePatch{
		UserID:         r.patchInt("userId"),
		JournalName:    r.patchString("journalName"),
		InitialCapital: r.patchDecimal("initialCapital"),
		Strategy1:      r.patchString("strategy1"),
		Strategy2:      r.patchString("strategy2"),
		Strategy3:      r.patchString("strategy3"),
		IsPro:          r.patchBool("isPro"),
		ProSince:       r.patchNullableTime("proSince"),
	}

	if err := r.err(); err != nil {
		return domain.TraderProfilePatch{}, err
	}
	return patch, nil
}
