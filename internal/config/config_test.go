package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", got.Server.Port)
	}
	if got.Storage.Backend != BackendLocal {
		t.Errorf("Storage.Backend = %q, want %q", got.Storage.Backend, BackendLocal)
	}
	if got.Storage.DataDir != "./data" {
		t.Errorf("Storage.DataDir = %q", got.Storage.DataDir)
	}
	if got.Google.DriveFolderName != "Financial Projects" {
		t.Errorf("Google.DriveFolderName = %q", got.Google.DriveFolderName)
	}
	if got.Google.AuthBaseURL != "https://oauth2.googleapis.com" {
		t.Errorf("Google.AuthBaseURL = %q", got.Google.AuthBaseURL)
	}
	if got.Reporting.CronSchedule != "0 20 * * *" {
		t.Errorf("Reporting.CronSchedule = %q", got.Reporting.CronSchedule)
	}
	if got.Reporting.Timezone != "Asia/Kolkata" {
		t.Errorf("Reporting.Timezone = %q", got.Reporting.Timezone)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", BackendMongo)
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DB_NAME", "reports")
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "client-123")

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", got.Server.Port)
	}
	if got.Storage.Backend != BackendMongo {
		t.Errorf("Storage.Backend = %q, want %q", got.Storage.Backend, BackendMongo)
	}
	if got.MongoDB.URI != "mongodb://db:27017" {
		t.Errorf("MongoDB.URI = %q", got.MongoDB.URI)
	}
	if got.MongoDB.DBName != "reports" {
		t.Errorf("MongoDB.DBName = %q", got.MongoDB.DBName)
	}
	if got.Google.OAuthClientID != "client-123" {
		t.Errorf("Google.OAuthClientID = %q", got.Google.OAuthClientID)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			Storage: StorageConfig{Backend: BackendLocal, DataDir: "./data"},
			MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "finreport"},
			Google: GoogleConfig{
				DriveFolderName: "Financial Projects",
				AuthBaseURL:     "https://oauth2.googleapis.com",
			},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Asia/Kolkata"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid local", func(c *Config) {}, false},
		{"valid mongo", func(c *Config) { c.Storage.Backend = BackendMongo }, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"local without data dir", func(c *Config) { c.Storage.DataDir = "" }, true},
		{"mongo without uri", func(c *Config) {
			c.Storage.Backend = BackendMongo
			c.MongoDB.URI = ""
		}, true},
		{"mongo without db name", func(c *Config) {
			c.Storage.Backend = BackendMongo
			c.MongoDB.DBName = ""
		}, true},
		{"missing drive folder", func(c *Config) { c.Google.DriveFolderName = "" }, true},
		{"missing auth base url", func(c *Config) { c.Google.AuthBaseURL = "" }, true},
		{"missing cron schedule", func(c *Config) { c.Reporting.CronSchedule = "" }, true},
		{"missing timezone", func(c *Config) { c.Reporting.Timezone = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	var nilCfg *Config
	if err := nilCfg.Validate(); err == nil {
		t.Error("Validate on nil config returned no error")
	}
}
