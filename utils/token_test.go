package utils

import "testing"

func TestJwtGenerateAndValidate(t *testing.T) {
	token, err := JwtGenerate(42, "FINANCE_MANAGER", 3, 7)
	if err != nil {
		t.Fatalf("JwtGenerate error: %v", err)
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate error: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token not valid")
	}

	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatal("claims have wrong type")
	}
	if claims.ID != 42 {
		t.Errorf("claims.ID = %d, want 42", claims.ID)
	}
	if claims.Role != "FINANCE_MANAGER" {
		t.Errorf("claims.Role = %q, want FINANCE_MANAGER", claims.Role)
	}
	if claims.CompanyId != 3 {
		t.Errorf("claims.CompanyId = %d, want 3", claims.CompanyId)
	}
	if claims.BranchId != 7 {
		t.Errorf("claims.BranchId = %d, want 7", claims.BranchId)
	}
}

func TestJwtValidate_RejectsGarbage(t *testing.T) {
	if _, err := JwtValidate("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
