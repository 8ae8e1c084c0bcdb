package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port" envconfig:"PORT"`
		Mode string `yaml:"mode" envconfig:"GIN_MODE"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path" envconfig:"DB_PATH"`
	} `yaml:"database"`
	Auth struct {
		Secret        string `yaml:"secret" envconfig:"JWT_SECRET"`
		TokenTTLHours int    `yaml:"tokenTTLHours" envconfig:"TOKEN_TTL_HOURS"`
	} `yaml:"auth"`
	Billing struct {
		// TaxRate is applied to the item subtotal at checkout and snapshotted
		// on the order. ServiceCharge is a flat display-time amount, never
		// persisted per order.
		TaxRate       float64 `yaml:"taxRate" envconfig:"TAX_RATE"`
		ServiceCharge string  `yaml:"serviceCharge" envconfig:"SERVICE_CHARGE"`
	} `yaml:"billing"`
	Orders struct {
		PageSize int `yaml:"pageSize" envconfig:"ORDERS_PAGE_SIZE"`
	} `yaml:"orders"`
	Logging struct {
		Path  string `yaml:"path" envconfig:"LOG_PATH"`
		Level string `yaml:"level" envconfig:"LOG_LEVEL"` // trace, debug, info, warn, error, fatal, panic
	} `yaml:"logging"`
}

var C Config

// JWTSecret used to sign tokens — populated by Load
var JWTSecret []byte

func setDefaults(c *Config) {
	c.Server.Port = "8080"
	c.Server.Mode = "debug"
	c.Database.Path = "restaurant_ordering.db"
	c.Auth.Secret = "restaurant_ordering_super_secret_2024"
	c.Auth.TokenTTLHours = 24
	c.Billing.TaxRate = 0.05
	c.Billing.ServiceCharge = "20"
	c.Orders.PageSize = 9
	c.Logging.Level = "info"
}

// Load populates C from defaults, then the optional yaml file at path, then
// environment variable overrides.
func Load(path string) error {
	setDefaults(&C)

	if path != "" {
		file, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(file, &C); err != nil {
				return errors.Wrap(err, "parse config file")
			}
		} else if !os.IsNotExist(err) {
			return errors.Wrap(err, "read config file")
		}
	}

	if err := envconfig.Process("", &C); err != nil {
		return errors.Wrap(err, "process env overrides")
	}

	if err := validate(&C); err != nil {
		return err
	}

	JWTSecret = []byte(C.Auth.Secret)
	return nil
}

func validate(c *Config) error {
	if c.Orders.PageSize <= 0 {
		return errors.New("orders.pageSize must be >0")
	}
	if c.Billing.TaxRate < 0 {
		return errors.New("billing.taxRate must be >=0")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return errors.New("auth.tokenTTLHours must be >0")
	}
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	return nil
}
