package conf

type Bootstrap struct {
	Server    *Server
	Data      *Data
	Validator *Validator
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Handoff *Handoff `json:"handoff"`
}

// Handoff 结果交接存储：条目数上限与过期时间
type Handoff struct {
	Size int32  `json:"size"`
	Ttl  string `json:"ttl"`
}

type Validator struct {
	Url     string `json:"url"`
	Timeout string `json:"timeout"`
}
