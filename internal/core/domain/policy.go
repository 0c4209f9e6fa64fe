package domain

// Permission is a coarse capability checked against the role policy table.
type Permission string

const (
	PermCreateContent    Permission = "create_content"
	PermDeleteAnyContent Permission = "delete_any_content"
	PermManageUsers      Permission = "manage_users"
	PermReviewSubmission Permission = "review_submission"
	PermManageCategories Permission = "manage_categories"
)

// rolePolicy is the static allow table. It is read-only after process start;
// anything not listed here is denied.
var rolePolicy = map[Role]map[Permission]struct{}{
	RoleAdmin: {
		PermCreateContent:    {},
		PermDeleteAnyContent: {},
		PermManageUsers:      {},
		PermReviewSubmission: {},
		PermManageCategories: {},
	},
	RoleOfficer: {
		PermReviewSubmission: {},
	},
	RoleContributor: {
		PermCreateContent: {},
	},
	RoleUser: {},
}

// Can reports whether the role holds the given permission. Unknown roles and
// unlisted permissions are denied.
func (r Role) Can(p Permission) bool {
	perms, ok := rolePolicy[r]
	if !ok {
		return false
	}
	_, ok = perms[p]
	return ok
}

// CanMutate is the ownership guard for edit and delete operations on a
// content item. Roles with delete_any_content may mutate anything; otherwise
// the actor must own the item and hold create_content. Anonymous items have
// no owner and can only be mutated through the privileged path.
func CanMutate(actor Claims, item *Content) bool {
	if actor.Role.Can(PermDeleteAnyContent) {
		return true
	}
	if item.OwnerID == "" {
		return false
	}
	return item.OwnerID == actor.SubjectID && actor.Role.Can(PermCreateContent)
}
