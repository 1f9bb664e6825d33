package validate

import (
	"context"

	"github.com/crmarques/apirecord/metadata"
)

type chain []Validator

func (c chain) Validate(ctx context.Context, payload map[string]any) error {
	for _, validator := range c {
		if err := validator.Validate(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

// FromSpec builds the validation gate a record type declared. A nil spec
// means the type has no gate and every payload passes.
func FromSpec(spec *metadata.ValidationSpec) (Validator, error) {
	if spec == nil {
		return nil, nil
	}

	validators := make(chain, 0, 2)
	if len(spec.RequiredAttributes) > 0 || len(spec.Assertions) > 0 {
		rules, err := NewRules(*spec)
		if err != nil {
			return nil, err
		}
		validators = append(validators, rules)
	}
	if len(spec.Rules) > 0 {
		validators = append(validators, NewTags(spec.Rules))
	}

	if len(validators) == 0 {
		return nil, nil
	}
	return validators, nil
}
