package pricing

import "strings"

// InferProjectType suggests a project type from a free-text job title. It is
// a default-selection helper for forms only; explicit caller input always
// wins and no pricing path consults it.
func InferProjectType(title string) ProjectType {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "install"):
		return ProjectTypeInstallation
	case strings.Contains(t, "repair"), strings.Contains(t, "fix"):
		return ProjectTypeRepair
	default:
		return ProjectTypeMaintenance
	}
}
