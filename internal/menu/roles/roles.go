// Package roles maps each role to the mutations it may perform. It gates
// mutation entry points only; reads are never filtered by role here.
package roles

import (
	"sort"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/models"
)

type Capability string

const (
	ViewCatalog    Capability = "view-catalog"
	ViewSeasonal   Capability = "view-seasonal"
	CreateItem     Capability = "create-item"
	UpdateItem     Capability = "update-item"
	DeleteItem     Capability = "delete-item"
	UpdatePrice    Capability = "update-price"
	SetBasePrice   Capability = "set-base-price"
	ManageSeasonal Capability = "manage-seasonal"
	ManageStock    Capability = "manage-stock"
)

type set map[Capability]struct{}

func setOf(caps ...Capability) set {
	s := make(set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

var table = map[models.Role]set{
	models.RoleHeadquarters: setOf(ViewCatalog, ViewSeasonal, CreateItem, UpdateItem, DeleteItem,
		UpdatePrice, SetBasePrice, ManageSeasonal),
	models.RoleBranch:   setOf(ViewCatalog, ViewSeasonal, UpdateItem, UpdatePrice, ManageStock),
	models.RoleCustomer: setOf(ViewCatalog, ViewSeasonal),
}

// Flags are the capability summary attached to every presented catalog.
type Flags struct {
	CanEdit        bool `json:"canEdit"`
	CanDelete      bool `json:"canDelete"`
	CanManageStock bool `json:"canManageStock"`
}

// PermissionsFor returns the role's capabilities sorted by name. Unknown roles have none.
func PermissionsFor(role models.Role) []Capability {
	caps := make([]Capability, 0, len(table[role]))
	for c := range table[role] {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}

func Has(role models.Role, c Capability) bool {
	_, ok := table[role][c]
	return ok
}

// Require returns CONFIGURATION_ERROR for unknown roles and PERMISSION_DENIED
// when a known role lacks c.
func Require(role models.Role, c Capability) error {
	if !role.Valid() {
		return errors.NewConfigurationError("unknown role " + string(role))
	}
	if !Has(role, c) {
		return errors.NewPermissionDeniedError(string(role), string(c))
	}
	return nil
}

func FlagsFor(role models.Role) Flags {
	return Flags{
		CanEdit:        Has(role, UpdateItem),
		CanDelete:      Has(role, DeleteItem),
		CanManageStock: Has(role, ManageStock),
	}
}

// Known reports whether c names a capability of any role.
func Known(c Capability) bool {
	for _, caps := range table {
		if _, ok := caps[c]; ok {
			return true
		}
	}
	return false
}
