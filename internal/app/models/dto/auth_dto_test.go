package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	req := &LoginRequest{Email: "  Ada@Uni.EDU ", Password: "secret"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "ada@uni.edu", req.Email)

	assert.Error(t, (&LoginRequest{Email: "not-an-email", Password: "secret"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ada@uni.edu"}).Validate())
}

func TestRegisterRequest_Validate(t *testing.T) {
	req := &RegisterRequest{Email: "ada@uni.edu", Password: "longenough", FullName: " Ada "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Ada", req.FullName)
	assert.Equal(t, "student", req.Role)

	bad := &RegisterRequest{Email: "ada@", Password: "longenough", FullName: "Ada"}
	assert.Error(t, bad.Validate())

	admin := &RegisterRequest{Email: "ada@uni.edu", Password: "longenough", FullName: "Ada", Role: "admin"}
	assert.Error(t, admin.Validate(), "admins are never self-registered")
}

func TestAddMemberRequest_Validate(t *testing.T) {
	req := &AddMemberRequest{Email: "Member@Uni.edu"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "member", req.Role)

	assert.Error(t, (&AddMemberRequest{Email: "member.uni.edu"}).Validate())
}
