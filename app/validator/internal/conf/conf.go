package conf

type Bootstrap struct {
	Server    *Server
	Validator *Validator
}

type Server struct {
	Http *HTTP
	Grpc *GRPC
}

type HTTP struct {
	Addr    string
	Timeout string
}

type GRPC struct {
	Addr    string
	Timeout string
}

type Validator struct {
	Llm         *LLM         `json:"llm"`
	Trends      *Trends      `json:"trends"`
	Engine      *Engine      `json:"engine"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Trends struct {
	Url     string `json:"url"`
	Timeout int32  `json:"timeout"`
}

type Engine struct {
	SynthesisTimeout int32 `json:"synthesis_timeout"`
	MaxRetries       int32 `json:"max_retries"`
	BatchParallelism int32 `json:"batch_parallelism"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
