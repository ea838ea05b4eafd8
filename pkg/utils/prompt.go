package utils

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/picogrid/ctwrap/pkg/simulation"
)

// PromptForParameters prompts for every declared parameter, offering the value
// in current (or the declared default) as the answer default. Keys of current
// that are not declared are passed through unchanged.
func PromptForParameters(params []simulation.Parameter, current simulation.Config) (simulation.Config, error) {
	result := current.Clone()

	for _, param := range params {
		def, ok := current[param.Name]
		if !ok {
			def = param.Default
		}

		value, err := promptForParameter(param, def)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", param.Name, err)
		}
		result[param.Name] = value
	}

	return result, nil
}

// promptForParameter prompts for a single parameter
func promptForParameter(param simulation.Parameter, def interface{}) (interface{}, error) {
	message := param.Description
	if message == "" {
		message = param.Name
	}
	if param.Unit != "" {
		message = fmt.Sprintf("%s [%s]", message, param.Unit)
	}

	switch param.Type {
	case "boolean":
		return promptBoolean(message, def)
	case "string":
		if len(param.Options) > 0 {
			return promptSelect(message, param.Options, def)
		}
	case "duration":
		message += " (e.g., 5m, 1h30m, 30s)"
	}

	return promptInput(message, param, def)
}

// promptInput asks for a free-form value and converts it with the same rules
// the module applies at run time.
func promptInput(message string, param simulation.Parameter, def interface{}) (interface{}, error) {
	defaultStr := ""
	if def != nil {
		defaultStr = fmt.Sprintf("%v", def)
	}

	prompt := &survey.Input{
		Message: message,
		Default: defaultStr,
	}

	validators := []survey.Validator{func(val interface{}) error {
		str, _ := val.(string)
		if str == "" && !param.Required {
			return nil
		}
		_, err := simulation.CoerceParameter(param, str)
		return err
	}}
	if param.Required {
		validators = append([]survey.Validator{survey.Required}, validators...)
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.ComposeValidators(validators...))); err != nil {
		return nil, err
	}

	if result == "" {
		return def, nil
	}
	return simulation.CoerceParameter(param, result)
}

func promptSelect(message string, options []string, def interface{}) (string, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if def != nil {
		// survey rejects a default that is not one of the options
		for _, o := range options {
			if o == fmt.Sprintf("%v", def) {
				prompt.Default = o
			}
		}
	}

	var result string
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func promptBoolean(message string, def interface{}) (bool, error) {
	defaultBool := false
	switch v := def.(type) {
	case bool:
		defaultBool = v
	case string:
		defaultBool, _ = strconv.ParseBool(v)
	}

	prompt := &survey.Confirm{
		Message: message,
		Default: defaultBool,
	}

	var result bool
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}
