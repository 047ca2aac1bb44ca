package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// stackNameRegex follows CloudFormation's stack name rules.
	stackNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)

	// regionRegex matches AWS region codes such as eu-central-1 or
	// us-gov-west-1.
	regionRegex = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]?)?-[a-z]+-\d$`)
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
	validateErr  error
)

// validatorInstance returns the shared validator with custom tags and
// English messages registered.
func validatorInstance() (*validator.Validate, ut.Translator, error) {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(yamlFieldName)

		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
			validateErr = fmt.Errorf("failed to register translations: %w", err)
			return
		}

		custom := []struct {
			tag     string
			fn      validator.Func
			message string
		}{
			{"stack_name", regexValidator(stackNameRegex), "{0} must start with a letter and contain only letters, digits and hyphens (max 128)"},
			{"aws_region", regexValidator(regionRegex), "{0} must be an AWS region code such as eu-central-1"},
		}
		for _, c := range custom {
			if err := v.RegisterValidation(c.tag, c.fn); err != nil {
				validateErr = fmt.Errorf("could not register %s: %w", c.tag, err)
				return
			}
			addTranslation(v, trans, c.tag, c.message)
		}

		validate, translator = v, trans
	})
	return validate, translator, validateErr
}

func regexValidator(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func addTranslation(v *validator.Validate, trans ut.Translator, tag, message string) {
	registerFn := func(ut ut.Translator) error {
		return ut.Add(tag, message, false)
	}
	transFn := func(ut ut.Translator, fe validator.FieldError) string {
		t, err := ut.T(fe.Tag(), fe.Field(), fe.Param())
		if err != nil {
			return fe.Error()
		}
		return t
	}
	_ = v.RegisterTranslation(tag, trans, registerFn, transFn)
}

// yamlFieldName reports fields by their YAML key so messages match the file.
func yamlFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// Validate checks c and returns every problem found, joined.
func (c *Config) Validate() error {
	v, trans, err := validatorInstance()
	if err != nil {
		return err
	}

	var errs []error

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%s: %s", fieldPath(fe.Namespace()), fe.Translate(trans)))
		}
	}

	errs = append(errs, c.validatePorts()...)
	errs = append(errs, c.validatePassword()...)
	errs = append(errs, c.validateNetwork()...)

	if c.Deploy.Timeout < 0 {
		errs = append(errs, errors.New("deploy.timeout must not be negative"))
	}

	return errors.Join(errs...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func (c *Config) validatePorts() []error {
	if c.Server.Ports != nil && len(c.Server.Ports) == 0 {
		return []error{errors.New("server.ports must list at least one port when set")}
	}

	var errs []error
	seen := make(map[string]bool, len(c.Server.Ports))
	for _, p := range c.Server.Ports {
		key := fmt.Sprintf("%d/%s", p.Port, p.protocol())
		if seen[key] {
			errs = append(errs, fmt.Errorf("server.ports: %s is listed twice", key))
		}
		seen[key] = true

		if p.Port == healthCheckPort && p.protocol() == "tcp" {
			errs = append(errs, fmt.Errorf("server.ports: %s is reserved for the health check sidecar", key))
		}
	}
	return errs
}

func (c *Config) validatePassword() []error {
	if c.Password.SecretARN != "" && c.Password.GeneratedSecretName != "" {
		return []error{errors.New("password: secretArn and generatedSecretName are mutually exclusive")}
	}
	return nil
}

func (c *Config) validateNetwork() []error {
	n := c.Network
	var errs []error

	if n.VPCID == "" && (n.CIDR != "" || len(n.PublicSubnets) > 0 || len(n.PrivateSubnets) > 0) {
		errs = append(errs, errors.New("network: vpcId is required when cidr or subnets are set"))
	}
	if (len(n.PublicSubnets) == 0) != (len(n.PrivateSubnets) == 0) {
		errs = append(errs, errors.New("network: publicSubnets and privateSubnets must be set together"))
	}
	if n.VPCID != "" && n.NewVPCCIDR != "" {
		errs = append(errs, errors.New("network: newVpcCidr only applies when no vpcId is given"))
	}
	return errs
}
