package controllers

import (
	"net/http"

	"school_booking_tool/app"
	"school_booking_tool/db"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// GET /api/loans: admins see the whole fleet's open loans, everyone else
// only their own.
func (lc *LoanController) List(c *gin.Context) {
	r := currentUser(c)
	if r.IsAdmin {
		ls, err := lc.Repo.ListActiveLoans(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"loans": ls})
		return
	}
	ls, err := lc.Repo.ListLoansForUser(c.Request.Context(), r.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": ls})
}

// POST /api/loans
func (lc *LoanController) Reserve(c *gin.Context) {
	var in struct {
		Day   string `json:"day" binding:"required"`
		Start string `json:"start" binding:"required"`
		Units []int  `json:"chromebooks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	r := currentUser(c)

	loan, err := lc.Repo.ReserveUnits(c.Request.Context(), db.ReserveUnitsInput{
		Day:         in.Day,
		Start:       in.Start,
		Units:       in.Units,
		UserID:      r.ID,
		TeacherName: r.Name,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// POST /api/loans/:id/return: empty/omitted unit list is a full return.
func (lc *LoanController) Return(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing loan id"})
		return
	}
	var in struct {
		Units []int `json:"chromebooks"`
	}
	_ = c.ShouldBindJSON(&in)

	res, err := lc.Repo.ReturnLoan(c.Request.Context(), id, in.Units)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"full":    res.Full,
		"loan":    res.Loan,
		"history": res.History,
	})
}

// POST /api/loans/:id/transfer
func (lc *LoanController) Transfer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing loan id"})
		return
	}
	var in struct {
		NewUserID string `json:"newUserId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	target, err := lc.Repo.FindUserByID(c.Request.Context(), in.NewUserID)
	if err != nil {
		fail(c, err)
		return
	}
	loan, err := lc.Repo.TransferLoan(c.Request.Context(), id, target.ID, target.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}
