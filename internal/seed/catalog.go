package seed

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// listRate converts the list prices below, quoted in dollars, into rupees
var listRate = decimal.NewFromInt(75)

func month(year int, m time.Month) *time.Time {
	t := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func price(s string) decimal.Decimal {
	return currency.FromRate(decimal.RequireFromString(s), listRate)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// DefaultCourses returns the built-in catalog. Ids follow catalog order; the
// database assigns its own ids when the catalog is seeded.
func DefaultCourses() []models.Course {
	return []models.Course{
		{
			ID:          1,
			Title:       "Full Stack Web Development Bootcamp",
			Description: "Learn modern web development with React, Node.js, and MongoDB",
			Teacher: models.Teacher{
				Name:       "Alex Johnson",
				University: "Stanford University",
				Department: "Computer Science",
				Bio:        "Full-stack developer with 5 years of industry experience. Currently pursuing a Master's in Computer Science at Stanford.",
			},
			Price:         price("59.99"),
			OriginalPrice: pricePtr("79.99"),
			Category:      "Web Development",
			Rating:        4.8,
			Students:      3245,
			Duration:      "24 hours",
			LastUpdated:   month(2023, time.March),
			Level:         models.LevelIntermediate,
			Chapters: []models.Chapter{
				{Title: "Introduction to Web Development", Duration: "45 min"},
				{Title: "HTML & CSS Fundamentals", Duration: "1 hr 30 min"},
				{Title: "JavaScript Essentials", Duration: "2 hr"},
				{Title: "React.js Fundamentals", Duration: "3 hr"},
				{Title: "Node.js and Express", Duration: "2 hr 30 min"},
				{Title: "MongoDB Database Integration", Duration: "2 hr"},
				{Title: "Authentication and Authorization", Duration: "1 hr 45 min"},
				{Title: "Deployment and DevOps", Duration: "1 hr 30 min"},
			},
		},
		{
			ID:          2,
			Title:       "Machine Learning Fundamentals",
			Description: "Master the core concepts of machine learning with Python and scikit-learn",
			Teacher: models.Teacher{
				Name:       "Sarah Williams",
				University: "MIT",
				Department: "Electrical Engineering & Computer Science",
				Bio:        "PhD candidate in Machine Learning at MIT with research focus on computer vision and deep learning.",
			},
			Price:       price("49.99"),
			Category:    "Machine Learning",
			Rating:      4.7,
			Students:    2130,
			Duration:    "18 hours",
			LastUpdated: month(2023, time.January),
			Level:       models.LevelIntermediate,
		},
		{
			ID:          3,
			Title:       "iOS App Development with Swift",
			Description: "Build real-world iOS applications using Swift and SwiftUI",
			Teacher: models.Teacher{
				Name:       "Michael Chen",
				University: "Berkeley",
				Department: "Computer Science",
				Bio:        "iOS developer with 4 years of experience. Currently pursuing a CS degree at Berkeley.",
			},
			Price:       price("54.99"),
			Category:    "Mobile Development",
			Rating:      4.9,
			Students:    1876,
			Duration:    "20 hours",
			LastUpdated: month(2023, time.February),
			Level:       models.LevelIntermediate,
		},
		{
			ID:          4,
			Title:       "Data Structures and Algorithms",
			Description: "Master essential computer science concepts for coding interviews",
			Teacher: models.Teacher{
				Name:       "Emily Rodriguez",
				University: "Stanford University",
				Department: "Computer Science",
				Bio:        "Software engineer at Google and Stanford CS graduate with expertise in algorithms and competitive programming.",
			},
			Price:       price("44.99"),
			Category:    "Computer Science",
			Rating:      4.6,
			Students:    2987,
			Duration:    "16 hours",
			LastUpdated: month(2023, time.April),
			Level:       models.LevelAdvanced,
		},
		{
			ID:          5,
			Title:       "Artificial Intelligence: Deep Learning",
			Description: "Learn advanced neural networks and deep learning techniques with TensorFlow",
			Teacher: models.Teacher{
				Name:       "Michael Chen",
				University: "Stanford",
				Department: "Computer Science",
				Bio:        "AI researcher with publications in top conferences. Currently pursuing a PhD in AI at Stanford.",
			},
			Price:         price("64.99"),
			OriginalPrice: pricePtr("79.99"),
			Category:      "Artificial Intelligence",
			Rating:        4.9,
			Students:      1876,
			Duration:      "22 hours",
			LastUpdated:   month(2023, time.May),
			Level:         models.LevelAdvanced,
		},
		{
			ID:          6,
			Title:       "Blockchain Development with Ethereum",
			Description: "Build decentralized applications (DApps) on the Ethereum blockchain",
			Teacher: models.Teacher{
				Name:       "Jessica Lee",
				University: "Princeton",
				Department: "Computer Science",
				Bio:        "Blockchain developer and researcher with experience in smart contract development and DeFi applications.",
			},
			Price:       price("59.99"),
			Category:    "Blockchain",
			Rating:      4.7,
			Students:    1243,
			Duration:    "18 hours",
			LastUpdated: month(2023, time.June),
			Level:       models.LevelIntermediate,
		},
		{
			ID:          7,
			Title:       "Cybersecurity Fundamentals",
			Description: "Learn essential security concepts and practices to protect digital systems",
			Teacher: models.Teacher{
				Name:       "Robert Chen",
				University: "Johns Hopkins",
				Department: "Computer Science",
				Bio:        "Cybersecurity expert with CISSP certification and experience in penetration testing and security analysis.",
			},
			Price:       price("49.99"),
			Category:    "Cybersecurity",
			Rating:      4.8,
			Students:    1576,
			Duration:    "15 hours",
			LastUpdated: month(2023, time.July),
			Level:       models.LevelBeginner,
		},
		{
			ID:          8,
			Title:       "Cloud Computing with AWS",
			Description: "Master Amazon Web Services for scalable and reliable cloud infrastructure",
			Teacher: models.Teacher{
				Name:       "Alex Johnson",
				University: "MIT",
				Department: "Computer Science",
				Bio:        "AWS certified solutions architect with experience in designing and implementing cloud-native applications.",
			},
			Price:       price("54.99"),
			Category:    "Cloud Computing",
			Rating:      4.7,
			Students:    1832,
			Duration:    "20 hours",
			LastUpdated: month(2023, time.August),
			Level:       models.LevelIntermediate,
		},
	}
}
