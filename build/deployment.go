package build

// DeploymentType is an enum specifying the deployment to compile.
type DeploymentType byte

const (
	// Development is a deployment that lets unit tests write their logs
	// straight to stdout.
	Development DeploymentType = iota

	// Production is a deployment that only logs through the backend set up
	// by the binary.
	Production
)

// String returns a human readable name for a build type.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

// IsProdBuild returns true if this is a production build.
func IsProdBuild() bool {
	return Deployment == Production
}

// IsDevBuild returns true if this is a development build.
func IsDevBuild() bool {
	return Deployment == Development
}
