// Package config defines the data structures related to configuration and
// includes functions for loading and parsing loan descriptions.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/datetime"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// DateTimeLayout is the format expected for the loan start date.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds a complete loan description.
type Configuration struct {
	Loan    Loan          `yaml:"loan" json:"loan"`
	Costs   []Cost        `yaml:"costs,omitempty" json:"costs,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty" json:"-"`
	Output  OutputConfig  `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`     // pretty, csv, json
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"` // display symbol only
	Locale   string `yaml:"locale,omitempty" json:"locale,omitempty"`     // digit grouping
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// loan description there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted loan description from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset loan and output fields.
func (c *Configuration) ApplyDefaults() {
	c.Loan.ApplyDefaults()
	if c.Output.Currency == "" {
		c.Output.Currency = constants.DefaultCurrencySymbol
	}
	if c.Output.Locale == "" {
		c.Output.Locale = constants.DefaultLocale
	}
}

// Validate reports every problem that would prevent a calculation.
func (c *Configuration) Validate() error {
	params, err := c.ToParameters()
	if err != nil {
		return err
	}

	err = validation.ValidateCalculation(params, c.ToCosts())
	if c.Loan.StartDate != "" {
		err = multierr.Append(err, datetime.ValidateStartDate(c.Loan.StartDate))
	}
	if c.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))
	}
	return err
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Loan.principalDerived {
		warnings = append(warnings, fmt.Sprintf("Loan amount %.0f derived from product price %.0f at %v%% financed",
			c.Loan.Principal, c.Loan.ProductPrice, c.Loan.ratio()))
	} else if c.Loan.Principal > 0 && c.Loan.ProductPrice > 0 {
		derived := c.Loan.derivedPrincipal()
		if derived != c.Loan.Principal {
			warnings = append(warnings, fmt.Sprintf("Loan amount %.0f overrides %.0f derived from the product price",
				c.Loan.Principal, derived))
		}
	}

	params, err := c.ToParameters()
	if err != nil {
		return warnings
	}
	if c.Loan.GracePeriodUnit == constants.GraceUnitYears && params.GraceMonths > 0 {
		warnings = append(warnings, fmt.Sprintf("Grace period of %v years applied as %d months",
			c.Loan.GracePeriod, params.GraceMonths))
	}

	return append(warnings, validation.CostWarnings(params, c.ToCosts())...)
}
