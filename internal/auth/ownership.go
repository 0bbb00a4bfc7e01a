package auth

import "github.com/academyhq/academy-service/internal/domain"

// OwnershipOverrideRoles returns the roles that may mutate owner-scoped resources they
// do not own.
func OwnershipOverrideRoles() domain.RoleSet {
	return domain.NewRoleSet(domain.RoleAdmin)
}

// CanMutate reports whether identity may change a resource owned by ownerID.
func CanMutate(identity domain.Identity, ownerID int64, override domain.RoleSet) bool {
	return identity.SubjectID == ownerID || override.Contains(identity.Role)
}
