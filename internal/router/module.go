package router

import "github.com/gin-gonic/gin"

// Module is one feature area (accounts, collections, photos) that hangs
// its routes off the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
