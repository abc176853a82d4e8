package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/rmahat/seatledger/entity"
	"github.com/rmahat/seatledger/service"
)

// MemberController serves the canonical member records to admin clients.
type MemberController struct {
	MemberService *service.MemberService
}

// RegisterStudent handles POST /library/registerStudent.
func (h *MemberController) RegisterStudent(ctx *gin.Context) {
	var member entity.Member
	if err := ctx.ShouldBindJSON(&member); err != nil {
		fail(ctx, 400, "bad member payload", err)
		return
	}

	created, err := h.MemberService.Register(ctx.Request.Context(), &member)
	if err != nil {
		failErr(ctx, "could not register member", err)
		return
	}
	ok(ctx, "member registered", created.Profile())
}

// GetStudent handles GET /library/getStudent/:reg.
func (h *MemberController) GetStudent(ctx *gin.Context) {
	profile, err := h.MemberService.GetProfile(ctx.Request.Context(), ctx.Param("reg"))
	if err != nil {
		failErr(ctx, "could not read member", err)
		return
	}
	ok(ctx, "member", profile)
}

type searchQuery struct {
	Q string `schema:"q"`
}

// SearchStudents handles GET /admin_library/searchStudents?q=, ranked by
// name similarity.
func (h *MemberController) SearchStudents(ctx *gin.Context) {
	var q searchQuery
	if err := decoder.Decode(&q, ctx.Request.URL.Query()); err != nil {
		fail(ctx, 400, "bad query", err)
		return
	}

	members, err := h.MemberService.Search(ctx.Request.Context(), q.Q)
	if err != nil {
		failErr(ctx, "search failed", err)
		return
	}
	ok(ctx, "members", members)
}
