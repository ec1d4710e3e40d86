package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindTypeMismatch,
				Method: "tanh_sinh",
				Path:   []string{"bounds", "0"},
				GoType: "string",
				Detail: "cannot convert",
			},
			contains: []string{"[validate]", "type_mismatch", "tanh_sinh", "bounds.0", "string", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseIntegrate,
				Kind:  KindDivergent,
			},
			contains: []string{"[integrate]", "divergent"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "compile module",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "compile module", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseValidate,
		Kind:  KindOutOfRange,
		Path:  []string{"points"},
	}

	if !err.Is(&Error{Phase: PhaseValidate, Kind: KindOutOfRange}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseIntegrate, Kind: KindOutOfRange}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseValidate, Kind: KindArity}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseValidate, Kind: KindOutOfRange}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestKind_Class(t *testing.T) {
	tests := []struct {
		kind Kind
		want Class
	}{
		{KindArity, ClassContract},
		{KindTypeMismatch, ClassContract},
		{KindFieldUnknown, ClassContract},
		{KindInvalidInput, ClassContract},
		{KindNotFound, ClassContract},
		{KindOutOfRange, ClassValueDomain},
		{KindNotComplex, ClassValueDomain},
		{KindDivergent, ClassValueDomain},
		{KindNonFinite, ClassValueDomain},
		{KindInvalidData, ClassInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Class(); got != tt.want {
				t.Errorf("Class() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassOf(t *testing.T) {
	if _, ok := ClassOf(errors.New("plain")); ok {
		t.Error("plain errors have no class")
	}

	contract := Arity(PhaseValidate, "sinh_sinh", 0, 2)
	if !IsContract(contract) || IsValueDomain(contract) {
		t.Errorf("arity error should be a contract error")
	}

	value := fmt.Errorf("ctx: %w", NotComplex(0.5, "string"))
	if !IsValueDomain(value) || IsContract(value) {
		t.Errorf("wrapped not-complex error should be a value-domain error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseValidate, KindOutOfRange).
		Method("gauss_kronrod").
		Path("options", "points").
		GoType("int").
		Value(17).
		Cause(cause).
		Detail("expected one of %s", "15, 21, 31, 41, 51, 61").
		Build()

	if err.Phase != PhaseValidate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseValidate)
	}
	if err.Kind != KindOutOfRange {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
	}
	if err.Method != "gauss_kronrod" {
		t.Errorf("Method = %v, want gauss_kronrod", err.Method)
	}
	if len(err.Path) != 2 || err.Path[0] != "options" || err.Path[1] != "points" {
		t.Errorf("Path = %v, want [options points]", err.Path)
	}
	if err.GoType != "int" {
		t.Errorf("GoType = %v, want 'int'", err.GoType)
	}
	if err.Value != 17 {
		t.Errorf("Value = %v, want 17", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected one of 15, 21, 31, 41, 51, 61" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Arity", func(t *testing.T) {
		err := Arity(PhaseValidate, "exp_sinh", 1, 2)
		if err.Kind != KindArity {
			t.Errorf("Kind = %v, want %v", err.Kind, KindArity)
		}
		if err.Value != 2 {
			t.Errorf("Value = %v, want 2", err.Value)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseValidate, []string{"bounds", "1"}, "string", "float64")
		if err.Kind != KindTypeMismatch || err.GoType != "string" {
			t.Errorf("Kind=%v GoType=%v", err.Kind, err.GoType)
		}
	})

	t.Run("FieldUnknown", func(t *testing.T) {
		err := FieldUnknown(PhaseValidate, "tanh_sinh", "points")
		if err.Kind != KindFieldUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldUnknown)
		}
		if !strings.Contains(err.Error(), `"points"`) {
			t.Errorf("message should name the keyword: %s", err)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange("gauss_kronrod", "points", 17, "must be one of 15, 21, 31, 41, 51, 61")
		if err.Kind != KindOutOfRange || err.Value != 17 {
			t.Errorf("Kind=%v Value=%v", err.Kind, err.Value)
		}
	})

	t.Run("NotComplex", func(t *testing.T) {
		err := NotComplex(0.25, "string")
		if err.Kind != KindNotComplex || err.Phase != PhaseEvaluate {
			t.Errorf("Kind=%v Phase=%v", err.Kind, err.Phase)
		}
		if !strings.Contains(err.Detail, "0.25") {
			t.Errorf("Detail = %v, should contain the abscissa", err.Detail)
		}
	})

	t.Run("Divergent", func(t *testing.T) {
		err := Divergent("sinh_sinh", "integrand does not decay")
		if err.Class() != ClassValueDomain {
			t.Errorf("Class = %v, want %v", err.Class(), ClassValueDomain)
		}
	})

	t.Run("NonFinite", func(t *testing.T) {
		err := NonFinite("tanh_sinh", 0.5)
		if err.Kind != KindNonFinite || err.Value != 0.5 {
			t.Errorf("Kind=%v Value=%v", err.Kind, err.Value)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLoad, "export", "f")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, `"f"`) {
			t.Errorf("Kind=%v Detail=%v", err.Kind, err.Detail)
		}
	})

	t.Run("Load", func(t *testing.T) {
		cause := errors.New("bad magic")
		err := Load("compile module", cause)
		if !errors.Is(err, cause) {
			t.Error("Load should wrap its cause")
		}
	})
}
