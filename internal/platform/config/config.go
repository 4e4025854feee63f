package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/user"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Log          LogConfig          `yaml:"log"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Sweeper      SweeperConfig      `yaml:"sweeper"`
	Notification NotificationConfig `yaml:"notification"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	RequestTimeout     time.Duration `yaml:"-"`
	RequestTimeoutRaw  string        `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host                string        `yaml:"host"`
	Port                int           `yaml:"port"`
	User                string        `yaml:"user"`
	Password            string        `yaml:"password"`
	Name                string        `yaml:"name"`
	SSLMode             string        `yaml:"ssl_mode"`
	MaxOpenConns        int           `yaml:"max_open_conns"`
	MaxIdleConns        int           `yaml:"max_idle_conns"`
	ConnMaxLifetime     time.Duration `yaml:"-"`
	ConnMaxIdleTime     time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw  string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw  string        `yaml:"conn_max_idle_time"`
	// ConnectTimeout は接続確立の上限時間、StatementTimeout はサーバー側で各文に適用される上限時間です。
	ConnectTimeout      time.Duration `yaml:"-"`
	ConnectTimeoutRaw   string        `yaml:"connect_timeout"`
	StatementTimeout    time.Duration `yaml:"-"`
	StatementTimeoutRaw string        `yaml:"statement_timeout"`
}

// RedisConfig はクエリキャッシュに利用する Redis の設定です。Enabled が false の場合キャッシュは使いません。
type RedisConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"-"`
	TTLRaw    string        `yaml:"ttl"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	ServiceName string `yaml:"service_name"`
}

// LifecycleConfig は有効期限の緊急度区分の日数閾値です。
type LifecycleConfig struct {
	CriticalDays int `yaml:"critical_days"`
	WarningDays  int `yaml:"warning_days"`
	InfoDays     int `yaml:"info_days"`
}

// SweeperConfig は認定状態の定期再計算の設定です。
type SweeperConfig struct {
	Enabled       bool          `yaml:"enabled"`
	RunOnStart    bool          `yaml:"run_on_start"`
	Interval      time.Duration `yaml:"-"`
	IntervalRaw   string        `yaml:"interval"`
	RunTimeout    time.Duration `yaml:"-"`
	RunTimeoutRaw string        `yaml:"run_timeout"`
}

// NotificationConfig は通知の宛先設定です。
type NotificationConfig struct {
	ExpiryRoles []string `yaml:"expiry_roles"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Redis.validateAndNormalize(); err != nil {
		return err
	}
	c.Log.normalize()
	if err := c.Lifecycle.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Sweeper.validateAndNormalize(); err != nil {
		return err
	}
	return c.Notification.validateAndNormalize()
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	timeout, err := parseDurationAllowEmpty(s.RequestTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.request_timeout: %w", err)
	}
	s.RequestTimeout = timeout

	shutdown, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if shutdown == 0 {
		shutdown = 10 * time.Second
	}
	s.ShutdownTimeout = shutdown
	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	connect, err := parseDurationAllowEmpty(d.ConnectTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: database.connect_timeout: %w", err)
	}
	if connect == 0 {
		connect = 5 * time.Second
	}
	d.ConnectTimeout = connect

	statement, err := parseDurationAllowEmpty(d.StatementTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: database.statement_timeout: %w", err)
	}
	if statement == 0 {
		statement = 30 * time.Second
	}
	d.StatementTimeout = statement

	return nil
}

func (r *RedisConfig) validateAndNormalize() error {
	if !r.Enabled {
		return nil
	}
	if r.Addr == "" {
		return fmt.Errorf("config: redis.addr must be set when redis is enabled")
	}
	if r.KeyPrefix == "" {
		r.KeyPrefix = "mining-personnel"
	}

	ttl, err := parseDurationAllowEmpty(r.TTLRaw)
	if err != nil {
		return fmt.Errorf("config: redis.ttl: %w", err)
	}
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	r.TTL = ttl
	return nil
}

func (l *LogConfig) normalize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format == "" {
		l.Format = "json"
	}
}

func (l *LifecycleConfig) validateAndNormalize() error {
	if l.CriticalDays == 0 && l.WarningDays == 0 && l.InfoDays == 0 {
		l.CriticalDays, l.WarningDays, l.InfoDays = 7, 15, 30
	}
	if l.CriticalDays < 0 || l.CriticalDays >= l.WarningDays || l.WarningDays >= l.InfoDays {
		return fmt.Errorf("config: lifecycle thresholds must satisfy 0 <= critical_days < warning_days < info_days")
	}
	return nil
}

func (s *SweeperConfig) validateAndNormalize() error {
	interval, err := parseDurationAllowEmpty(s.IntervalRaw)
	if err != nil {
		return fmt.Errorf("config: sweeper.interval: %w", err)
	}
	if interval == 0 {
		interval = time.Hour
	}
	s.Interval = interval

	timeout, err := parseDurationAllowEmpty(s.RunTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: sweeper.run_timeout: %w", err)
	}
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	s.RunTimeout = timeout
	return nil
}

func (n *NotificationConfig) validateAndNormalize() error {
	roles := make([]string, 0, len(n.ExpiryRoles))
	for _, r := range n.ExpiryRoles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if !user.Role(r).IsValid() {
			return fmt.Errorf("config: notification.expiry_roles: unknown role %q", r)
		}
		roles = append(roles, r)
	}
	n.ExpiryRoles = roles
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードはエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
