package template

// Intrinsic is a CloudFormation intrinsic function call. It encodes to a
// single-key JSON object such as {"Ref": "MyVpc"}.
type Intrinsic map[string]any

// Pseudo parameters.
const (
	PseudoRegion    = "AWS::Region"
	PseudoStackName = "AWS::StackName"
)

// Ref references a resource or parameter.
func Ref(logicalID string) Intrinsic {
	return Intrinsic{"Ref": logicalID}
}

// GetAtt reads an attribute of a resource.
func GetAtt(logicalID, attribute string) Intrinsic {
	return Intrinsic{"Fn::GetAtt": []string{logicalID, attribute}}
}

// Join concatenates values with a delimiter.
func Join(delimiter string, values ...any) Intrinsic {
	return Intrinsic{"Fn::Join": []any{delimiter, values}}
}

// Select picks the element at index from a list.
func Select(index int, list any) Intrinsic {
	return Intrinsic{"Fn::Select": []any{index, list}}
}

// GetAZs lists the availability zones of a region. An empty region means the
// stack's region.
func GetAZs(region string) Intrinsic {
	return Intrinsic{"Fn::GetAZs": region}
}

// Name returns the function name of the intrinsic, e.g. "Ref" or "Fn::GetAtt".
// It returns "" when the value is not a single-key intrinsic.
func (i Intrinsic) Name() string {
	if len(i) != 1 {
		return ""
	}
	for k := range i {
		return k
	}
	return ""
}

// RefTarget returns the logical ID referenced by a Ref or Fn::GetAtt value.
func RefTarget(v any) (string, bool) {
	i, ok := v.(Intrinsic)
	if !ok {
		return "", false
	}
	switch i.Name() {
	case "Ref":
		s, ok := i["Ref"].(string)
		return s, ok
	case "Fn::GetAtt":
		parts, ok := i["Fn::GetAtt"].([]string)
		if !ok || len(parts) != 2 {
			return "", false
		}
		return parts[0], true
	default:
		return "", false
	}
}
