package stdapi

import (
	"github.com/wippyai/apigen/errors"
)

// Validate checks the module for description errors: fail values that
// disagree with the return type, references to unregistered types,
// duplicate function names, unsealed interfaces and methods shadowing a base
// method. Every problem found is reported; the result combines them.
func (m *Module) Validate() error {
	var errs []error
	a := m.Arena

	names := make(map[string]bool, len(m.Functions))
	for _, f := range m.Functions {
		path := []string{m.Name, f.Name}
		if names[f.Name] {
			errs = append(errs, errors.Duplicate(errors.PhaseValidate, path, "function"))
		}
		names[f.Name] = true
		errs = append(errs, checkFunction(a, path, f)...)
	}
	for _, id := range m.Interfaces {
		if t := a.Type(id); t == nil || t.Kind != KindInterface {
			errs = append(errs, errors.UnresolvedType(errors.PhaseValidate, []string{m.Name, "interfaces"}, uint32(id)))
		}
	}
	if len(errs) > 0 {
		return errors.Combine(errs...)
	}

	for _, iface := range m.AllInterfaces() {
		errs = append(errs, checkInterface(a, m.Name, iface)...)
	}
	return errors.Combine(errs...)
}

// CheckFailValue reports whether the declared fail value of f agrees with
// its return type: void functions take an empty value, others a non-empty one.
func CheckFailValue(a *Arena, path []string, f *Function) error {
	if !f.HasFail {
		return nil
	}
	isVoid := a.Kind(f.Type) == KindVoid
	if isVoid != (f.Fail == "") {
		return errors.FailValueMismatch(path, a.Expr(f.Type), f.Fail)
	}
	return nil
}

func checkFunction(a *Arena, path []string, f *Function) []error {
	var errs []error
	if a.Type(f.Type) == nil {
		errs = append(errs, errors.UnresolvedType(errors.PhaseValidate, append(path, "return"), uint32(f.Type)))
	} else if err := CheckFailValue(a, path, f); err != nil {
		errs = append(errs, err)
	}
	for _, arg := range f.Args {
		if a.Type(arg.Type) == nil {
			errs = append(errs, errors.UnresolvedType(errors.PhaseValidate, append(path, arg.Name), uint32(arg.Type)))
		}
	}
	return errs
}

func checkInterface(a *Arena, module string, iface *Type) []error {
	var errs []error
	if !iface.Sealed() {
		errs = append(errs, errors.Unsealed(errors.PhaseValidate, iface.Name))
	}

	inherited := make(map[string]string)
	chain := a.Bases(iface.ID)
	for _, base := range chain[1:] {
		for _, m := range a.Type(base).OwnMethods() {
			if _, ok := inherited[m.Name]; !ok {
				inherited[m.Name] = a.Type(base).Name
			}
		}
	}

	own := make(map[string]bool)
	for _, m := range iface.OwnMethods() {
		path := []string{module, iface.Name, m.Name}
		if owner, ok := inherited[m.Name]; ok {
			errs = append(errs, errors.MethodCollision(path, owner))
		}
		if own[m.Name] {
			errs = append(errs, errors.Duplicate(errors.PhaseValidate, path, "method"))
		}
		own[m.Name] = true
		errs = append(errs, checkFunction(a, path, &m.Function)...)
	}
	return errs
}
