package cli

// manifestTemplate is one starter manifest offered by the new command.
type manifestTemplate struct {
	Name        string
	Description string
	Body        string
}

// templates lists the starter manifests in menu order.
var templates = []manifestTemplate{
	{
		Name:        "sequential",
		Description: "A left-to-right chain of steps",
		Body: `title = "Processing Pipeline"

[[sequential]]
group = "pipeline"
nodes = ["Ingest", "Validate", "Transform", "Publish"]
`,
	},
	{
		Name:        "hub",
		Description: "A hub fanning out to spokes",
		Body: `title = "Service Map"

[[hub]]
group = "services"
hub = "API Gateway"
spokes = ["Auth Service", "Billing Service", "Search Service"]
`,
	},
	{
		Name:        "parallel",
		Description: "Fan-out from one input, fan-in to one output",
		Body: `title = "Worker Pool"

[[parallel]]
group = "workers"
input = "Queue"
paths = ["Worker 1", "Worker 2", "Worker 3"]
output = "Results"
`,
	},
	{
		Name:        "full",
		Description: "All three patterns stacked in one diagram",
		Body: `title = "System Overview"

[[sequential]]
group = "intake"
nodes = ["Client", "Load Balancer", "API"]

[[hub]]
group = "services"
hub = "API"
spokes = [
    "Auth",
    { label = "Orders", fill = "#a5d8ff" },
    { label = "Inventory", shape = "ellipse" },
]

[[parallel]]
group = "processing"
input = "Job Queue"
paths = ["Worker 1", "Worker 2"]
output = "Store"
`,
	},
}

// templateByName looks up a starter template by its menu name.
func templateByName(name string) (manifestTemplate, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return manifestTemplate{}, false
}
