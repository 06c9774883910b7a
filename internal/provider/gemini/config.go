package gemini

// Config contains Gemini provider configuration.
//
// Two backends are supported: the public Gemini API (authenticated with an
// API key) and Vertex AI (authenticated with application-default credentials,
// addressed by project and location). BackendVertex requires Project and
// Location; BackendGemini requires APIKey.
type Config struct {
	APIKey   string `env:"GEMINI_API_KEY"`
	Backend  string `env:"GEMINI_BACKEND"         envDefault:"gemini"`
	Project  string `env:"GOOGLE_CLOUD_PROJECT"`
	Location string `env:"GOOGLE_CLOUD_LOCATION"  envDefault:"us-west1"`
}

const (
	// BackendGemini selects the public Gemini API.
	BackendGemini = "gemini"

	// BackendVertex selects Vertex AI.
	BackendVertex = "vertex"
)
