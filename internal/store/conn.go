package store

import (
	"fmt"
	"net/url"

	"github.com/yanun0323/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderflow/pkg/exception"
)

const (
	defaultPostgresHost    = "localhost"
	defaultPostgresPort    = 5432
	defaultPostgresSSLMode = "disable"
)

// Option defines connection options for PostgreSQL.
type Option struct {
	Host       string            `json:"host" yaml:"host"`
	Port       int               `json:"port" yaml:"port"`
	User       string            `json:"user" yaml:"user"`
	Password   string            `json:"password" yaml:"password"`
	Database   string            `json:"database" yaml:"database"`
	SSLMode    string            `json:"sslMode" yaml:"ssl_mode"`
	Params     map[string]string `json:"params" yaml:"params"`
	ConnString string            `json:"dsn" yaml:"dsn"`
	Config     *gorm.Config      `json:"-" yaml:"-"`
}

// Enabled reports whether the option points at a database.
func (opt Option) Enabled() bool {
	return opt.ConnString != "" || opt.Host != ""
}

// Client wraps a PostgreSQL connection pool holding run results.
type Client struct {
	db *gorm.DB
}

// Open connects to PostgreSQL.
func Open(option Option) (*Client, error) {
	if !option.Enabled() {
		return nil, exception.ErrStoreDisabled
	}
	config := option.Config
	if config == nil {
		config = &gorm.Config{}
	}

	db, err := gorm.Open(postgres.Open(option.dsn()), config)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return &Client{db: db}, nil
}

// DB returns the underlying gorm.DB instance.
func (c *Client) DB() *gorm.DB {
	if c == nil {
		return nil
	}
	return c.db
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (opt Option) dsn() string {
	if opt.ConnString != "" {
		return opt.ConnString
	}

	host := opt.Host
	if host == "" {
		host = defaultPostgresHost
	}
	port := opt.Port
	if port == 0 {
		port = defaultPostgresPort
	}
	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}
	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	for key, value := range opt.Params {
		if key == "" {
			continue
		}
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
