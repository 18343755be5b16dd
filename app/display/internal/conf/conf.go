package conf

type Bootstrap struct {
	Server *Server
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Radar struct {
	Llm          *LLM         `json:"llm"`
	Log          *Log         `json:"log"`
	Concurrency  *Concurrency `json:"concurrency"`
	Db           *DB          `json:"db"`
	HistoryLimit int32        `json:"history_limit"`
}

type LLM struct {
	Provider   string `json:"provider"`
	BaseUrl    string `json:"base_url"`
	Model      string `json:"model"`
	ApiKeyEnv  string `json:"api_key_env"`
	Structured bool   `json:"structured"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
