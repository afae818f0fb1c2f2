package model

import "testing"

func TestRoleCapabilities(t *testing.T) {
	if !CanManageContent(RoleAdmin) || !CanManageContent(RoleProfesor) || CanManageContent(RoleEstudiante) {
		t.Errorf("CanManageContent: неверный набор ролей")
	}
	if !CanManageUsers(RoleAdmin) || CanManageUsers(RoleProfesor) || CanManageUsers(RoleEstudiante) {
		t.Errorf("CanManageUsers: неверный набор ролей")
	}
	if !CanTakeSimulacro(RoleEstudiante) || CanTakeSimulacro(Role("invitado")) {
		t.Errorf("CanTakeSimulacro: неверный набор ролей")
	}
	if !CanViewProgressOf(RoleEstudiante, 5, 5) || CanViewProgressOf(RoleEstudiante, 5, 6) {
		t.Errorf("студент должен видеть только свой прогресс")
	}
	if !CanViewProgressOf(RoleProfesor, 1, 6) {
		t.Errorf("преподаватель должен видеть прогресс любого студента")
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Profesor ")
	if err != nil || r != RoleProfesor {
		t.Fatalf("ParseRole: получено %q, %v", r, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Errorf("ожидалась ошибка для неизвестной роли")
	}
}
