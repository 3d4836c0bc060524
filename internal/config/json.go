package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Auth struct {
		PasswordHashKey string   `json:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		LoginRPS        float64  `json:"login_rps"`
		LoginBurst      int      `json:"login_burst"`
	} `json:"auth,omitempty"`

	Matcher struct {
		DescriptorLength  int      `json:"descriptor_length"`
		VerifyThreshold   float64  `json:"verify_threshold"`
		IdentifyThreshold float64  `json:"identify_threshold"`
		IdentifyTimeout   Duration `json:"identify_timeout"`
		IdentifyWorkers   int      `json:"identify_workers"`
	} `json:"matcher,omitempty"`

	Recognizer struct {
		BaseURL string   `json:"base_url"`
		Timeout Duration `json:"timeout"`
	} `json:"recognizer,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			PasswordHashKey: jsonCfg.Auth.PasswordHashKey,
			TokenSignKey:    jsonCfg.Auth.TokenSignKey,
			TokenIssuer:     jsonCfg.Auth.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.Auth.TokenDuration),
			LoginRPS:        jsonCfg.Auth.LoginRPS,
			LoginBurst:      jsonCfg.Auth.LoginBurst,
		},
		Matcher: Matcher{
			DescriptorLength:  jsonCfg.Matcher.DescriptorLength,
			VerifyThreshold:   jsonCfg.Matcher.VerifyThreshold,
			IdentifyThreshold: jsonCfg.Matcher.IdentifyThreshold,
			IdentifyTimeout:   time.Duration(jsonCfg.Matcher.IdentifyTimeout),
			IdentifyWorkers:   jsonCfg.Matcher.IdentifyWorkers,
		},
		Recognizer: Recognizer{
			BaseURL: jsonCfg.Recognizer.BaseURL,
			Timeout: time.Duration(jsonCfg.Recognizer.Timeout),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
