package eval

// Query is one relevance probe. The probe passes when the top search result
// belongs to any of the expected services.
type Query struct {
	Text             string
	ExpectedServices []string
	Description      string
}

// DefaultQueries returns the standard relevance probe set.
func DefaultQueries() []Query {
	return []Query{
		{
			Text:             "How do I create an ECS instance?",
			ExpectedServices: []string{"ecs"},
			Description:      "Basic ECS creation query",
		},
		{
			Text:             "What are pricing options for storage?",
			ExpectedServices: []string{"obs", "evs", "sfs"},
			Description:      "Storage pricing query",
		},
		{
			Text:             "API authentication methods",
			ExpectedServices: []string{"iam", "security", "identity"},
			Description:      "Authentication query",
		},
		{
			Text:             "How to configure VPC network?",
			ExpectedServices: []string{"vpc"},
			Description:      "VPC configuration query",
		},
		{
			Text:             "Database backup and restore",
			ExpectedServices: []string{"rds", "taurusdb", "gaussdb"},
			Description:      "Database backup query",
		},
		{
			Text:             "How do I set up API Gateway?",
			ExpectedServices: []string{"apig", "api-gateway"},
			Description:      "API Gateway setup query",
		},
		{
			Text:             "Load balancing configuration",
			ExpectedServices: []string{"elb", "loadbalancer"},
			Description:      "Load balancer query",
		},
		{
			Text:             "How to create a Kubernetes cluster?",
			ExpectedServices: []string{"cce", "cloud-container-engine"},
			Description:      "Kubernetes cluster query",
		},
		{
			Text:             "Redis cache setup",
			ExpectedServices: []string{"redis", "dcs"},
			Description:      "Redis cache query",
		},
		{
			Text:             "Object storage bucket creation",
			ExpectedServices: []string{"obs"},
			Description:      "OBS bucket creation query",
		},
	}
}
