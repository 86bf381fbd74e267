package main

import (
	"pronet/config"
	"pronet/models"
	"pronet/routes"
	"pronet/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.BusinessAccount{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Post{},
		&models.PostMedia{},
		&models.SharedPost{},
		&models.Comment{},
		&models.CommentLike{},
		&models.PostLike{},
		&models.Follower{},
		&models.JobListing{},
		&models.JobApplication{},
		&models.Badge{},
		&models.UserBadge{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
