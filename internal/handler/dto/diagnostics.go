package dto

// Endpoints lists the main routes in the root descriptor.
type Endpoints struct {
	Notes       string `json:"notes"`
	AdminConfig string `json:"admin_config"`
	Health      string `json:"health"`
}

// RootResponse is the static service descriptor.
type RootResponse struct {
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Endpoints Endpoints `json:"endpoints"`
}

// Collaborator connection states.
const (
	Connected    = "connected"
	Disconnected = "disconnected"
)

// HealthResponse is the body of GET /health.
// Environment is set when healthy, Error when not.
type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	DocumentStore string `json:"document_store"`
	SecretManager string `json:"secret_manager"`
	Environment   string `json:"environment,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// ConfigResponse is the configuration snapshot from GET /admin/config.
type ConfigResponse struct {
	Service             string `json:"service"`
	Version             string `json:"version"`
	ProjectID           string `json:"project_id"`
	Environment         string `json:"environment"`
	DatabaseConfigured  bool   `json:"database_configured"`
	JWTConfigured       bool   `json:"jwt_configured"`
	DocumentStoreStatus string `json:"document_store_status"`
	SecretManagerStatus string `json:"secret_manager_status"`
}

// ConfigErrorResponse is returned with status 200 when the snapshot fails.
type ConfigErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ProbeResponse is the body of the liveness and readiness probes.
type ProbeResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
