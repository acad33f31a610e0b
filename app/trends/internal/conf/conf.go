package conf

type Bootstrap struct {
	Server *Server
	Trends *Trends
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Trends struct {
	Backend    string   `json:"backend"`
	MockPoints int32    `json:"mock_points"`
	Serpapi    *SerpAPI `json:"serpapi"`
}

type SerpAPI struct {
	ApiKey     string `json:"api_key"`
	BaseUrl    string `json:"base_url"`
	MaxRetries int32  `json:"max_retries"`
}
