package server

import (
	"github.com/gin-gonic/gin"

	partnerdomain "github.com/trendsinusa/dealsignals/internal/partner/domain"
)

const ctxKeyPartner = "dealsignals.partner"

func setPartner(c *gin.Context, p *partnerdomain.Partner) {
	c.Set(ctxKeyPartner, p)
}

// partnerFrom returns the authenticated partner set by partnerAuth, or nil.
func partnerFrom(c *gin.Context) *partnerdomain.Partner {
	v, ok := c.Get(ctxKeyPartner)
	if !ok {
		return nil
	}
	p, _ := v.(*partnerdomain.Partner)
	return p
}
