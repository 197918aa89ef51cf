package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type OpenAI struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Config struct {
	PostgresURI       string
	RedisURI          string
	Port              string
	FrontendURL       string
	SecretKey         string
	CookieName        string
	UploadDir         string
	OpenAI            OpenAI
	R2                R2
	FacebookAppID     string
	FacebookAppSecret string
	FacebookRedirect  string
	GraphBaseURL      string
	LinkedinBaseURL   string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", "127.0.0.1:6379"),
		Port:        getEnv("PORT", "3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		CookieName:  getEnv("COOKIE_NAME", "postpilot_token"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		OpenAI: OpenAI{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		FacebookAppID:     getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret: getEnv("FACEBOOK_APP_SECRET", ""),
		FacebookRedirect:  getEnv("FACEBOOK_REDIRECT_URI", ""),
		GraphBaseURL:      getEnv("GRAPH_BASE_URL", "https://graph.facebook.com/v18.0"),
		LinkedinBaseURL:   getEnv("LINKEDIN_BASE_URL", "https://api.linkedin.com/v2"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
