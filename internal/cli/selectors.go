// Package cli holds the terminal-facing glue: account selector
// resolution, the interactive fix-up prompt and output formatting.
package cli

import (
	"fmt"

	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

// AccountSelector narrows the accounts table down to one account by
// any combination of substring filters.
type AccountSelector struct {
	Name       string
	ParentGUID string
	GUID       string
	Type       string
}

// IsZero reports whether no filter is set.
func (sel AccountSelector) IsZero() bool {
	return sel == AccountSelector{}
}

func (sel AccountSelector) String() string {
	return fmt.Sprintf("name=%q parent=%q guid=%q type=%q", sel.Name, sel.ParentGUID, sel.GUID, sel.Type)
}

// ResolveOne resolves the selector to exactly one account. Zero or
// multiple matches is a configuration error: the operation the account
// is for must not run against a guess.
func (sel AccountSelector) ResolveOne(repo storage.AccountReader) (storage.Account, error) {
	// Limit 2 is enough to detect ambiguity.
	accounts, err := repo.Accounts(storage.AccountQuery{
		Limit:      2,
		Name:       sel.Name,
		ParentGUID: sel.ParentGUID,
		GUID:       sel.GUID,
		Type:       sel.Type,
	})
	if err != nil {
		return storage.Account{}, err
	}
	switch len(accounts) {
	case 1:
		return accounts[0], nil
	case 0:
		return storage.Account{}, fmt.Errorf("no account matches selector (%s)", sel)
	default:
		return storage.Account{}, fmt.Errorf("selector (%s) is ambiguous: matches %s and %s",
			sel, accounts[0].Name, accounts[1].Name)
	}
}
