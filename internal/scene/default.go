package scene

import (
	"math"

	"github.com/ivlev/skyjourney/internal/curve"
)

// CurveDistance is the depth between consecutive control points.
const CurveDistance = 250.0

// Default returns the published journey.
func Default() *Scene {
	d := CurveDistance
	one := Vec{1, 1, 1}
	uniform := func(k float64) Vec { return Vec{k, k, k} }

	return &Scene{
		Version: "1.0",
		Path: Path{
			Points: []Vec{
				{0, 0, 0},
				{0, 0, -d},
				{100, 0, -2 * d},
				{-100, 0, -3 * d},
				{100, 0, -4 * d},
				{0, 0, -5 * d},
				{0, 0, -6 * d},
				{0, 0, -7 * d},
			},
			Tension: curve.DefaultTension,
		},
		Waypoints: []Section{
			{
				Anchor: 1, Offset: Vec{-3, 0, 0}, RailBias: -1,
				Title:    "Welcome",
				Subtitle: "Buckle up as I take you on my Journey as a Frontend Developer.",
			},
			{
				Anchor: 2, Offset: Vec{2, 3, 0}, RailBias: 1.5,
				Title: "HomeChow.ca (Frontend Developer Intern)",
				Subtitle: "• Worked closely with a cross-functional team to design and implement new features.\n" +
					"• Handled production of various web pages.\n" +
					"• Diagnosed and resolved issues, optimizing application performance.\n" +
					"• Leveraged React, TypeScript and Next.js for web development.\n" +
					"• Tested the application end to end with Cypress.\n" +
					"• Took part in stand-ups, sprint planning and retrospectives.",
			},
			{
				Anchor: 3, Offset: Vec{-3, 0, 0}, RailBias: -1,
				Title:    "Fear of flying?",
				Subtitle: "Our flight attendants will help you, have a great journey",
			},
			{
				Anchor: 4, Offset: Vec{3.5, 2.3, -10}, RailBias: 1.5,
				Title: "SubShare (Junior frontend developer)",
				Subtitle: "• Developed a user-friendly web app with the team.\n" +
					"• Contributed to cross-platform mobile development with React Native.\n" +
					"• Implemented Redux for consistent data flow.\n" +
					"• Built reusable components for faster development.",
			},
		},
		Clouds: []Cloud{
			// start
			{Offset: Vec{-3.5, -3.2, -7}, Scale: one, Opacity: 1},
			{Offset: Vec{3.5, -4, -10}, Scale: one, Opacity: 1},
			{Offset: Vec{-18, 0.2, -68}, Scale: uniform(4), Rotation: Vec{-math.Pi / 5, math.Pi / 6, 0}, Opacity: 1},
			{Offset: Vec{10, -1.2, -52}, Scale: uniform(2.5), Opacity: 1},
			{Offset: Vec{-2, 1, -30}, Scale: uniform(0.3), Opacity: 0.5},
			{Offset: Vec{1.5, -0.5, -20}, Scale: Vec{0.2, 0.3, 0.4}, Opacity: 0.5},
			{Offset: Vec{-3.5, -1.2, -7}, Scale: Vec{1, 1, 1.5}, Opacity: 1},
			{Offset: Vec{3.5, -1, -10}, Scale: Vec{1, 1, 2}, Rotation: Vec{0, math.Pi, 0}, Opacity: 1},
			{Offset: Vec{-3.5, -0.2, -12}, Scale: one, Rotation: Vec{0, math.Pi / 3, 0}, Opacity: 1},
			{Offset: Vec{3.5, -0.2, -12}, Scale: one, Opacity: 1},
			{Offset: Vec{1, -0.2, -12}, Scale: uniform(0.4), Rotation: Vec{0, math.Pi / 9, 0}, Opacity: 0.7},
			{Offset: Vec{0, 1, -100}, Scale: uniform(0.8), Opacity: 0.3},
			{Offset: Vec{10, 5, -50}, Scale: uniform(3.8), Opacity: 0.3},
			{Offset: Vec{5, 15, -300}, Scale: uniform(3.8), Opacity: 0.3},
			{Offset: Vec{20, 2, -380}, Scale: uniform(3.8), Opacity: 0.3},
			{Offset: Vec{70, 10, -430}, Scale: uniform(3.8), Opacity: 0.3},

			// first point
			{Anchor: 1, Offset: Vec{10, -4, 64}, Scale: uniform(4), Opacity: 1},
			{Anchor: 1, Offset: Vec{-20, 4, 28}, Scale: uniform(3), Rotation: Vec{0, math.Pi / 7, 0}, Opacity: 1},
			{Anchor: 1, Offset: Vec{-13, 4, -62}, Scale: uniform(5), Rotation: Vec{0, math.Pi / 7, math.Pi / 5}, Opacity: 1},
			{Anchor: 1, Offset: Vec{54, 2, -82}, Scale: uniform(5), Rotation: Vec{math.Pi / 2, math.Pi / 2, math.Pi / 3}, Opacity: 1},
			{Anchor: 1, Offset: Vec{8, -14, -22}, Scale: uniform(5), Opacity: 1},

			// second point
			{Anchor: 2, Offset: Vec{6, -7, 50}, Scale: uniform(3), Opacity: 1},
			{Anchor: 2, Offset: Vec{-2, 4, -26}, Scale: uniform(2), Opacity: 1},
			{Anchor: 2, Offset: Vec{12, 1, -86}, Scale: uniform(4), Rotation: Vec{math.Pi / 4, 0, math.Pi / 3}, Opacity: 1},

			// third point
			{Anchor: 3, Offset: Vec{3, -10, 50}, Scale: uniform(3), Opacity: 1},
			{Anchor: 3, Offset: Vec{-10, 0, 30}, Scale: uniform(3), Rotation: Vec{math.Pi / 4, 0, math.Pi / 5}, Opacity: 1},
			{Anchor: 3, Offset: Vec{-20, -5, -8}, Scale: uniform(4), Rotation: Vec{math.Pi, 0, math.Pi / 5}, Opacity: 1},
			{Anchor: 3, Offset: Vec{0, -5, -98}, Scale: uniform(5), Rotation: Vec{0, math.Pi / 3, 0}, Opacity: 1},

			// fourth point
			{Anchor: 4, Offset: Vec{3, -10, 2}, Scale: uniform(2), Opacity: 1},
			{Anchor: 4, Offset: Vec{24, -6, -42}, Scale: uniform(3), Rotation: Vec{math.Pi / 4, 0, math.Pi / 5}, Opacity: 1},
			{Anchor: 4, Offset: Vec{-4, 9, -62}, Scale: uniform(3), Rotation: Vec{math.Pi / 3, 0, math.Pi / 3}, Opacity: 1},

			// final
			{Anchor: 7, Offset: Vec{-12, 5, 120}, Scale: uniform(3), Rotation: Vec{math.Pi / 4, math.Pi / 6, 0}, Opacity: 1},
			{Anchor: 7, Scale: uniform(4), Opacity: 1},
		},
		Ribbon: Ribbon{Divisions: 1000, Y: -2, Width: 0.16},
		Background: []Stop{
			{A: "#357ca1", B: "#ffad30"},
			{A: "#09b1ec", B: "#ffffff"},
			{A: "#357ca1", B: "#ffffff"},
			{A: "#357ca1", B: "#ffcc00"},
		},
		Scroll: Scroll{Pages: 20, Damping: 0.5},
		Grain:  0.05,
	}
}
