package postgres

// Relation registries bind the relation names callers use to GORM association
// paths, one registry per entity type. Names not present in the registry are
// skipped with a warning rather than treated as errors: callers declare
// relation depth, the registry decides what is loadable.
var (
	UserRelations = map[string]string{
		"project": "Project",
	}

	CustomerRelations = map[string]string{
		"projects": "Projects",
		// Nested load: the users of every project under the customer.
		"projects.users": "Projects.Users",
	}

	ProjectRelations = map[string]string{
		"customer": "Customer",
		"users":    "Users",
	}

	// Audit entries carry no relations.
	AuditRelations = map[string]string{}
)
